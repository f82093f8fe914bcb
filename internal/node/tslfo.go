package node

import (
	"math"

	"github.com/cbegin/modsynth-go/internal/dspmath"
	"github.com/cbegin/modsynth-go/internal/lfo"
	"github.com/cbegin/modsynth-go/internal/trigger"
)

const (
	TsLfoTime = iota
	TsLfoTrig
	TsLfoRev
)

const (
	tsLfoMinMs = 0.1
	tsLfoMaxMs = 300000

	// The preview oscillator runs at this rate so one plot covers a few
	// cycles regardless of the live period.
	tsLfoGraphRate = 160
)

var tsLfoInputs = []ParamSpec{
	TsLfoTime: {Name: "time", Min: 0.1, Max: 30000, Curve: CurveExp4, Default: 1000, Unit: "ms"},
	TsLfoTrig: {Name: "trig", Min: -1, Max: 1, Curve: CurveIdentity},
	TsLfoRev:  {Name: "rev", Min: 0, Max: 1, Curve: CurveLinear, Default: 0.5},
}

// TsLfo is a TriSaw LFO whose period is set in milliseconds. Its unipolar
// output can be reset to phase 0 with a trigger.
type TsLfo struct {
	osc  *lfo.TriSaw
	trig trigger.Trigger
}

func NewTsLfo() *TsLfo {
	return &TsLfo{osc: lfo.NewTriSaw()}
}

func (*TsLfo) Inputs() []ParamSpec { return tsLfoInputs }
func (*TsLfo) Atoms() []EnumAtom   { return nil }
func (*TsLfo) Outputs() int        { return 1 }

func (n *TsLfo) SetSampleRate(sr float32) {
	n.osc.SetSampleRate(sr)
}

func (n *TsLfo) Reset() {
	n.osc.Reset()
	n.trig.Reset()
}

func (n *TsLfo) Process(ctx Context, _ *ExecContext, _ []Atom, inputs []ProcBuf, outputs []ProcBuf, leds LedValues) {
	timeIn := inputs[TsLfoTime]
	trigIn := inputs[TsLfoTrig]
	revIn := inputs[TsLfoRev]
	out := outputs[0]

	timeSpec := tsLfoInputs[TsLfoTime]
	revSpec := tsLfoInputs[TsLfoRev]

	nf := ctx.NFrames()
	for f := 0; f < nf; f++ {
		if n.trig.Check(trigIn.Read(f)) {
			n.osc.Reset()
		}
		ms := dspmath.Clamp(timeSpec.Denorm(timeIn, f), tsLfoMinMs, tsLfoMaxMs)
		n.osc.Set(1000/ms, revSpec.Denorm(revIn, f))
		out.Write(f, float32(n.osc.NextUnipolar()))
	}
	finish(nf, outputs, leds)
}

// GraphFunc previews the waveform with its own oscillator. Shorter periods
// draw more cycles.
func (n *TsLfo) GraphFunc() GraphFunc {
	osc := lfo.NewTriSaw()
	osc.SetSampleRate(tsLfoGraphRate)

	return func(gd GraphAtomData, init bool, _, _ float32) float32 {
		if init {
			t := float32(math.Sqrt(float64(dspmath.Clamp(gd.Norm(TsLfoTime), 0, 1))))
			osc.Set(5*(1-t)+t, gd.Denorm(TsLfoRev))
			osc.Reset()
		}
		return float32(osc.NextUnipolar())
	}
}
