package reverb

import (
	"math"
	"testing"
)

func approx(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestTimeScaleStretchesTankOnly(t *testing.T) {
	d := New()
	tank1 := d.TankAllPassTimesMs()
	delays1 := d.TankDelayTimesMs()
	input1 := d.InputAllPassTimesMs()

	d.SetTimeScale(2)
	tank2 := d.TankAllPassTimesMs()
	delays2 := d.TankDelayTimesMs()
	input2 := d.InputAllPassTimesMs()

	for i := range tank1 {
		if !approx(tank2[i], tank1[i]*2, 1e-4) {
			t.Errorf("tank all-pass %d: got %f, want %f", i, tank2[i], tank1[i]*2)
		}
		if !approx(delays2[i], delays1[i]*2, 1e-4) {
			t.Errorf("tank delay %d: got %f, want %f", i, delays2[i], delays1[i]*2)
		}
		if input2[i] != input1[i] {
			t.Errorf("input all-pass %d changed: %f -> %f", i, input1[i], input2[i])
		}
	}
}

func TestReferenceLengths(t *testing.T) {
	d := New()
	got := d.TankAllPassTimesMs()
	want := [4]float32{672, 908, 1800, 2656}
	for i := range want {
		w := want[i] * 1000 / refSampleRate
		if !approx(got[i], w, 1e-4) {
			t.Errorf("tank all-pass %d: got %f ms, want %f ms", i, got[i], w)
		}
	}
	in := d.InputAllPassTimesMs()
	if !approx(in[0], 141*1000/refSampleRate, 1e-4) {
		t.Errorf("first input all-pass: got %f ms", in[0])
	}
}

func TestTimeScaleClamped(t *testing.T) {
	d := New()
	d.SetTimeScale(100)
	if d.TimeScale() != MaxTimeScale {
		t.Fatalf("scale %f, want %v", d.TimeScale(), MaxTimeScale)
	}
	d.SetTimeScale(0)
	if d.TimeScale() != MinTimeScale {
		t.Fatalf("scale %f, want %v", d.TimeScale(), MinTimeScale)
	}
}

func TestTimeScaleIgnoresTinyChanges(t *testing.T) {
	d := New()
	before := d.TankAllPassTimesMs()
	d.SetTimeScale(1 + 1e-8)
	if d.TankAllPassTimesMs() != before {
		t.Fatal("sub-epsilon scale change was applied")
	}
	if d.TimeScale() != 1 {
		t.Fatalf("scale %f, want 1", d.TimeScale())
	}
}

func TestResetRestoresNominal(t *testing.T) {
	d := New()
	nominal := d.TankAllPassTimesMs()
	d.SetTimeScale(3)
	d.Reset()
	if d.TankAllPassTimesMs() != nominal {
		t.Fatal("reset did not restore the nominal lengths")
	}
	if d.TimeScale() != 1 {
		t.Fatalf("scale after reset %f, want 1", d.TimeScale())
	}
}

func TestSilenceInSilenceOut(t *testing.T) {
	d := New()
	d.SetSampleRate(48000)
	p := DefaultParams()
	for i := 0; i < 10000; i++ {
		l, r := d.Process(&p, 0, 0)
		if l != 0 || r != 0 {
			t.Fatalf("frame %d: got (%g, %g) from silence", i, l, r)
		}
	}
}

func TestImpulseProducesFiniteTail(t *testing.T) {
	d := New()
	d.SetSampleRate(44100)
	p := DefaultParams()
	p.Decay = 0.8

	var early, late float64
	for i := 0; i < 44100*2; i++ {
		in := float32(0)
		if i == 0 {
			in = 1
		}
		l, r := d.Process(&p, in, in)
		if math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) ||
			math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
			t.Fatalf("frame %d: non-finite output (%g, %g)", i, l, r)
		}
		e := float64(l)*float64(l) + float64(r)*float64(r)
		switch {
		case i < 44100/2:
			early += e
		case i >= 44100*3/2:
			late += e
		}
	}
	if early == 0 {
		t.Fatal("impulse produced no reverb tail")
	}
	if late >= early {
		t.Fatalf("tail does not decay: early energy %g, late energy %g", early, late)
	}
}

func TestResetSilencesTail(t *testing.T) {
	d := New()
	p := DefaultParams()
	for i := 0; i < 2000; i++ {
		d.Process(&p, 0.5, -0.25)
	}
	d.Reset()
	for i := 0; i < 2000; i++ {
		l, r := d.Process(&p, 0, 0)
		if l != 0 || r != 0 {
			t.Fatalf("frame %d after reset: got (%g, %g)", i, l, r)
		}
	}
}

func TestPreDelayShiftsOnset(t *testing.T) {
	p := DefaultParams()
	p.InputDiffusionMix = 0

	onset := func(preDelayMs float32) int {
		d := New()
		d.SetSampleRate(10000)
		p.PreDelayMs = preDelayMs
		for i := 0; i < 10000; i++ {
			in := float32(0)
			if i == 0 {
				in = 1
			}
			l, r := d.Process(&p, in, in)
			if l != 0 || r != 0 {
				return i
			}
		}
		return -1
	}

	a := onset(0)
	b := onset(100)
	if a < 0 || b < 0 {
		t.Fatalf("no output: onsets %d, %d", a, b)
	}
	if b-a < 990 || b-a > 1010 {
		t.Fatalf("100 ms pre-delay shifted onset by %d samples, want about 1000", b-a)
	}
}

func TestSampleRateClamped(t *testing.T) {
	d := New()
	d.SetSampleRate(1e6)
	if d.SampleRate() != MaxSampleRate {
		t.Fatalf("sample rate %f, want %d", d.SampleRate(), MaxSampleRate)
	}
	p := DefaultParams()
	p.TimeScale = MaxTimeScale
	p.PreDelayMs = MaxPreDelayMs
	p.ModDepth = 1
	for i := 0; i < 1000; i++ {
		d.Process(&p, 1, 1)
	}
}

func BenchmarkProcess(b *testing.B) {
	d := New()
	d.SetSampleRate(48000)
	p := DefaultParams()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float32(i%97) / 97
		d.Process(&p, x, -x)
	}
}
