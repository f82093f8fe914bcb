package node

const (
	AmpInp = iota
	AmpAtt
	AmpGain
)

const AmpNegAtt = 0

// Choices of the neg_att atom.
const (
	NegAttAllow int64 = iota
	NegAttClip
)

var ampInputs = []ParamSpec{
	AmpInp:  {Name: "inp", Min: -1, Max: 1, Curve: CurveIdentity},
	AmpAtt:  {Name: "att", Min: 0, Max: 1, Curve: CurveLinear, Default: 1},
	AmpGain: {Name: "gain", Min: 0, Max: 2, Curve: CurveExp4, Default: 1},
}

var ampAtoms = []EnumAtom{
	AmpNegAtt: {Name: "neg_att", Labels: []string{"Allow", "Clip"}, Default: NegAttAllow},
}

// Amp scales its input by att and gain. att only attenuates; gain may
// amplify. With neg_att set to Clip, negative att values silence the signal
// instead of being mirrored.
type Amp struct{}

func NewAmp() *Amp { return &Amp{} }

func (*Amp) Inputs() []ParamSpec { return ampInputs }
func (*Amp) Atoms() []EnumAtom   { return ampAtoms }
func (*Amp) Outputs() int        { return 1 }

func (*Amp) SetSampleRate(float32) {}
func (*Amp) Reset()                {}

func (*Amp) Process(ctx Context, _ *ExecContext, atoms []Atom, inputs []ProcBuf, outputs []ProcBuf, leds LedValues) {
	inp := inputs[AmpInp]
	att := inputs[AmpAtt]
	gain := inputs[AmpGain]
	out := outputs[0]
	clip := atoms[AmpNegAtt].Int() > 0

	attSpec := ampInputs[AmpAtt]
	gainSpec := ampInputs[AmpGain]

	n := ctx.NFrames()
	for f := 0; f < n; f++ {
		a := att.Read(f)
		if clip {
			if a < 0 {
				a = 0
			}
		} else if a < 0 {
			a = -a
		}
		out.Write(f, inp.Read(f)*attSpec.DenormV(a)*gainSpec.Denorm(gain, f))
	}
	finish(n, outputs, leds)
}
