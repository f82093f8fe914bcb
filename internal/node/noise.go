package node

import "github.com/cbegin/modsynth-go/internal/rng"

const NoiseGain = 0

const NoiseMode = 0

const (
	NoiseBipolar int64 = iota
	NoiseUnipolar
)

var noiseInputs = []ParamSpec{
	NoiseGain: {Name: "gain", Min: 0, Max: 2, Curve: CurveExp4, Default: 1},
}

var noiseAtoms = []EnumAtom{
	NoiseMode: {Name: "mode", Labels: []string{"Bipolar", "Unipolar"}, Default: NoiseBipolar},
}

// Noise outputs white noise. Each instance has its own generator so two
// noise nodes never correlate.
type Noise struct {
	seed uint64
	rng  *rng.Xoroshiro128
}

func NewNoise(seed uint64) *Noise {
	return &Noise{seed: seed, rng: rng.NewXoroshiro128FromSeed(seed)}
}

func (*Noise) Inputs() []ParamSpec { return noiseInputs }
func (*Noise) Atoms() []EnumAtom   { return noiseAtoms }
func (*Noise) Outputs() int        { return 1 }

func (*Noise) SetSampleRate(float32) {}

// Reset rewinds the generator, so a reset node repeats its sequence.
func (n *Noise) Reset() {
	n.rng = rng.NewXoroshiro128FromSeed(n.seed)
}

func (n *Noise) Process(ctx Context, _ *ExecContext, atoms []Atom, inputs []ProcBuf, outputs []ProcBuf, leds LedValues) {
	gain := inputs[NoiseGain]
	out := outputs[0]
	unipolar := atoms[NoiseMode].Int() == NoiseUnipolar
	gainSpec := noiseInputs[NoiseGain]

	nf := ctx.NFrames()
	for f := 0; f < nf; f++ {
		s := float32(n.rng.NextOpen01())
		if !unipolar {
			s = s*2 - 1
		}
		out.Write(f, s*gainSpec.Denorm(gain, f))
	}
	finish(nf, outputs, leds)
}
