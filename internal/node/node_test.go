package node

import (
	"math"
	"testing"
)

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

// constInputs allocates one buffer per spec filled with the given
// normalized values, or the defaults where vals is short.
func constInputs(specs []ParamSpec, nframes int, vals ...float32) []ProcBuf {
	bufs := make([]ProcBuf, len(specs))
	for i, s := range specs {
		bufs[i] = make(ProcBuf, nframes)
		v := s.DefaultNorm()
		if i < len(vals) {
			v = vals[i]
		}
		bufs[i].Fill(v)
	}
	return bufs
}

func outBufs(n Node, nframes int) []ProcBuf {
	bufs := make([]ProcBuf, n.Outputs())
	for i := range bufs {
		bufs[i] = make(ProcBuf, nframes)
	}
	return bufs
}

func TestParamSpecRoundTrip(t *testing.T) {
	specs := []ParamSpec{
		{Name: "lin", Min: -2, Max: 3, Curve: CurveLinear},
		{Name: "exp", Min: 0, Max: 10, Curve: CurveExp},
		{Name: "exp4", Min: 0.1, Max: 30000, Curve: CurveExp4},
	}
	for _, s := range specs {
		t.Run(s.Name, func(t *testing.T) {
			for _, v := range []float32{0, 0.1, 0.5, 0.9, 1} {
				d := s.DenormV(v)
				if back := s.Norm(d); !approx(back, v, 1e-3) {
					t.Errorf("Norm(DenormV(%f)) = %f", v, back)
				}
			}
			if d := s.DenormV(0); !approx(d, s.Min, 1e-4) {
				t.Errorf("DenormV(0) = %f, want %f", d, s.Min)
			}
			if d := s.DenormV(1); !approx(d, s.Max, 1e-2) {
				t.Errorf("DenormV(1) = %f, want %f", d, s.Max)
			}
		})
	}
}

func TestIdentityCurve(t *testing.T) {
	s := ParamSpec{Min: -1, Max: 1, Curve: CurveIdentity}
	for _, v := range []float32{-1, -0.3, 0, 0.7, 1.5} {
		if s.DenormV(v) != v || s.Norm(v) != v {
			t.Fatalf("identity changed %f", v)
		}
	}
}

func TestEnumAtomFormat(t *testing.T) {
	e := ampAtoms[AmpNegAtt]
	tests := []struct {
		atom Atom
		want string
	}{
		{Setting(0), "Allow"},
		{Setting(1), "Clip"},
		{Setting(2), "?"},
		{Setting(-1), "?"},
		{Param(1), "Clip"},
	}
	for _, tt := range tests {
		if got := e.Format(tt.atom); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.atom.Int(), got, tt.want)
		}
	}
	if e.Clamp(7) != 1 || e.Clamp(-3) != 0 {
		t.Errorf("Clamp out of range: %d, %d", e.Clamp(7), e.Clamp(-3))
	}
}

func TestEnumAtomParse(t *testing.T) {
	e := ampAtoms[AmpNegAtt]
	a, err := e.Parse(" clip ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Int() != NegAttClip {
		t.Fatalf("Parse(clip) = %d", a.Int())
	}
	if _, err := e.Parse("fold"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestAtomConversions(t *testing.T) {
	s := Setting(3)
	if !s.IsSetting() || s.Int() != 3 || s.Float() != 3 {
		t.Fatalf("setting atom: %v %d %f", s.IsSetting(), s.Int(), s.Float())
	}
	p := Param(2.75)
	if p.IsSetting() || p.Int() != 2 || p.Float() != 2.75 {
		t.Fatalf("param atom: %v %d %f", p.IsSetting(), p.Int(), p.Float())
	}
}

func TestLedValues(t *testing.T) {
	leds := NewLedValues(2)
	leds.Set(1, -0.5)
	leds.Set(5, 1) // ignored
	if leds.Get(0) != 0 || leds.Get(1) != -0.5 || leds.Get(5) != 0 {
		t.Fatalf("unexpected LED values %f %f", leds.Get(0), leds.Get(1))
	}
}

func TestNodesStoreLastSampleInLeds(t *testing.T) {
	const nframes = 64
	nodes := []struct {
		name string
		n    interface {
			Node
			Info
		}
	}{
		{"amp", NewAmp()},
		{"tslfo", NewTsLfo()},
		{"noise", NewNoise(7)},
		{"plate", NewPlateReverb()},
	}
	for _, tt := range nodes {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.n
			n.SetSampleRate(44100)
			in := constInputs(n.Inputs(), nframes)
			if n.Inputs()[0].Curve == CurveIdentity {
				for f := range in[0] {
					in[0][f] = float32(f) / nframes
				}
			}
			out := outBufs(n, nframes)
			leds := NewLedValues(n.Outputs())
			n.Process(Block(nframes), &ExecContext{}, DefaultAtoms(n.Atoms()), in, out, leds)
			for i := range out {
				if got, want := leds.Get(i), out[i][nframes-1]; got != want {
					t.Errorf("led %d = %f, want %f", i, got, want)
				}
			}
		})
	}
}

func TestSnapshotDefaults(t *testing.T) {
	s := &Snapshot{Specs: tsLfoInputs}
	if got := s.Denorm(TsLfoTime); !approx(got, 1000, 0.5) {
		t.Fatalf("default time %f, want 1000", got)
	}
	if got := s.Atom(3); got.Int() != 0 {
		t.Fatalf("missing atom %d", got.Int())
	}
}
