package node

import (
	"github.com/cbegin/modsynth-go/internal/dspmath"
	"github.com/cbegin/modsynth-go/internal/reverb"
)

const (
	PlateInL = iota
	PlateInR
	PlatePreDelay
	PlateSize
	PlateDecay
	PlateInputLPF
	PlateInputHPF
	PlateDiffusion
	PlateDiffusionMix
	PlateModSpeed
	PlateModShape
	PlateModDepth
	PlateReverbLPF
	PlateReverbHPF
	PlateMix
)

const (
	PlateOutL = iota
	PlateOutR
)

var plateInputs = []ParamSpec{
	PlateInL:          {Name: "in_l", Min: -1, Max: 1, Curve: CurveIdentity},
	PlateInR:          {Name: "in_r", Min: -1, Max: 1, Curve: CurveIdentity},
	PlatePreDelay:     {Name: "predly", Min: 0, Max: reverb.MaxPreDelayMs, Curve: CurveExp4, Default: 0, Unit: "ms"},
	PlateSize:         {Name: "size", Min: reverb.MinTimeScale, Max: reverb.MaxTimeScale, Curve: CurveExp, Default: 1},
	PlateDecay:        {Name: "dcy", Min: 0, Max: 1, Curve: CurveLinear, Default: 0.5},
	PlateInputLPF:     {Name: "ilpf", Min: 0, Max: 22000, Curve: CurveExp4, Default: 22000, Unit: "Hz"},
	PlateInputHPF:     {Name: "ihpf", Min: 0, Max: 22000, Curve: CurveExp4, Default: 0, Unit: "Hz"},
	PlateDiffusion:    {Name: "dif", Min: 0, Max: 1, Curve: CurveLinear, Default: 1},
	PlateDiffusionMix: {Name: "dmix", Min: 0, Max: 1, Curve: CurveLinear, Default: 1},
	PlateModSpeed:     {Name: "mspeed", Min: 0, Max: 100, Curve: CurveExp4, Default: 1},
	PlateModShape:     {Name: "mshp", Min: 0, Max: 1, Curve: CurveLinear, Default: 0.5},
	PlateModDepth:     {Name: "mdepth", Min: 0, Max: 1, Curve: CurveLinear, Default: 0.2},
	PlateReverbLPF:    {Name: "rlpf", Min: 0, Max: 22000, Curve: CurveExp4, Default: 10000, Unit: "Hz"},
	PlateReverbHPF:    {Name: "rhpf", Min: 0, Max: 22000, Curve: CurveExp4, Default: 0, Unit: "Hz"},
	PlateMix:          {Name: "mix", Min: 0, Max: 1, Curve: CurveLinear, Default: 0.5},
}

// PlateReverb runs the stereo plate and mixes it with the dry input.
type PlateReverb struct {
	dat    *reverb.Dattorro
	params reverb.Params
}

func NewPlateReverb() *PlateReverb {
	return &PlateReverb{dat: reverb.New(), params: reverb.DefaultParams()}
}

func (*PlateReverb) Inputs() []ParamSpec { return plateInputs }
func (*PlateReverb) Atoms() []EnumAtom   { return nil }
func (*PlateReverb) Outputs() int        { return 2 }

func (n *PlateReverb) SetSampleRate(sr float32) {
	n.dat.SetSampleRate(sr)
}

func (n *PlateReverb) Reset() {
	n.dat.Reset()
}

func (n *PlateReverb) readParams(inputs []ProcBuf, f int) {
	in := func(i int) float32 { return plateInputs[i].Denorm(inputs[i], f) }

	p := &n.params
	p.PreDelayMs = in(PlatePreDelay)
	p.TimeScale = in(PlateSize)
	p.Decay = in(PlateDecay)
	p.InputHighCutHz = in(PlateInputLPF)
	p.InputLowCutHz = in(PlateInputHPF)
	p.Diffusion = in(PlateDiffusion)
	p.InputDiffusionMix = in(PlateDiffusionMix)
	p.ModSpeed = in(PlateModSpeed)
	p.ModShape = in(PlateModShape)
	p.ModDepth = in(PlateModDepth)
	p.ReverbHighCutHz = in(PlateReverbLPF)
	p.ReverbLowCutHz = in(PlateReverbHPF)
}

func (n *PlateReverb) Process(ctx Context, _ *ExecContext, _ []Atom, inputs []ProcBuf, outputs []ProcBuf, leds LedValues) {
	inL := inputs[PlateInL]
	inR := inputs[PlateInR]
	mixIn := inputs[PlateMix]
	outL := outputs[PlateOutL]
	outR := outputs[PlateOutR]
	mixSpec := plateInputs[PlateMix]

	nf := ctx.NFrames()
	for f := 0; f < nf; f++ {
		n.readParams(inputs, f)
		dryL, dryR := inL.Read(f), inR.Read(f)
		wetL, wetR := n.dat.Process(&n.params, dryL, dryR)

		mix := dspmath.Clamp(mixSpec.Denorm(mixIn, f), 0, 1)
		outL.Write(f, dspmath.Lerp(mix, dryL, wetL))
		outR.Write(f, dspmath.Lerp(mix, dryR, wetR))
	}
	finish(nf, outputs, leds)
}

// Reverb exposes the underlying network for inspection.
func (n *PlateReverb) Reverb() *reverb.Dattorro { return n.dat }
