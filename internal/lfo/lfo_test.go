package lfo

import (
	"math"
	"testing"
)

func TestTriSawUnipolarRange(t *testing.T) {
	for _, rev := range []float32{0, 0.1, 0.5, 0.9, 1} {
		for _, freq := range []float32{0.1, 3, 440, 20000} {
			l := NewTriSaw()
			l.SetSampleRate(44100)
			l.Set(freq, rev)
			for i := 0; i < 5000; i++ {
				v := l.NextUnipolar()
				if v < 0 || v > 1 {
					t.Fatalf("rev=%f freq=%f: value %f outside [0, 1]", rev, freq, v)
				}
				if p := l.Phase(); p < 0 || p >= 1 {
					t.Fatalf("rev=%f freq=%f: phase %f outside [0, 1)", rev, freq, p)
				}
			}
		}
	}
}

func TestTriSawTriangleShape(t *testing.T) {
	l := NewTriSaw()
	l.SetSampleRate(100) // 100 samples per cycle at 1 Hz
	l.Set(1, 0.5)

	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.NextUnipolar()
	}
	if math.Abs(samples[0]) > 1e-9 {
		t.Errorf("phase 0: got %f, want 0", samples[0])
	}
	if math.Abs(samples[25]-0.5) > 0.02 {
		t.Errorf("phase 0.25: got %f, want 0.5", samples[25])
	}
	if math.Abs(samples[50]-1) > 0.02 {
		t.Errorf("phase 0.5: got %f, want 1", samples[50])
	}
	if math.Abs(samples[75]-0.5) > 0.02 {
		t.Errorf("phase 0.75: got %f, want 0.5", samples[75])
	}
}

func TestTriSawResetRestoresOffset(t *testing.T) {
	for _, offs := range []float64{0, 0.25, 0.5, 0.75} {
		l := NewTriSaw()
		l.SetSampleRate(48000)
		l.Set(13, 0.3)
		l.SetPhaseOffs(offs)
		for i := 0; i < 1234; i++ {
			l.NextUnipolar()
		}
		l.Reset()
		if l.Phase() != offs {
			t.Fatalf("phase after reset = %f, want %f", l.Phase(), offs)
		}
	}
}

func TestTriSawFrequencyChangeIsContinuous(t *testing.T) {
	l := NewTriSaw()
	l.SetSampleRate(1000)
	l.Set(2, 0.5)
	for i := 0; i < 100; i++ {
		l.NextUnipolar()
	}
	before := l.Phase()
	l.Set(5, 0.5)
	if l.Phase() != before {
		t.Fatal("changing frequency must not move the phase")
	}
}

func TestTriSawBipolarRange(t *testing.T) {
	l := NewTriSaw()
	l.SetSampleRate(1000)
	l.Set(7, 0.2)
	var lo, hi float64
	for i := 0; i < 2000; i++ {
		v := l.NextBipolar()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo < -1 || hi > 1 {
		t.Fatalf("bipolar range [%f, %f] exceeds [-1, 1]", lo, hi)
	}
	if hi-lo < 1.9 {
		t.Fatalf("bipolar swing %f too small", hi-lo)
	}
}
