package filter

import (
	"math"
	"testing"
)

func sine(freq, sr float64, i int) float32 {
	return float32(math.Sin(2 * math.Pi * freq * float64(i) / sr))
}

func peakAfterWarmup(next func(float32) float32, freq, sr float64) float64 {
	var peak float64
	for i := 0; i < 20000; i++ {
		y := math.Abs(float64(next(sine(freq, sr, i))))
		if i > 10000 && y > peak {
			peak = y
		}
	}
	return peak
}

func TestOnePoleLPFAttenuatesHighs(t *testing.T) {
	lo := NewOnePoleLPF()
	lo.SetSampleRate(48000)
	lo.SetFreq(500)
	low := peakAfterWarmup(lo.Next, 50, 48000)

	hi := NewOnePoleLPF()
	hi.SetSampleRate(48000)
	hi.SetFreq(500)
	high := peakAfterWarmup(hi.Next, 10000, 48000)

	if low < 0.9 {
		t.Fatalf("passband peak = %f, want ~1", low)
	}
	if high > 0.1 {
		t.Fatalf("stopband peak = %f, want strong attenuation", high)
	}
}

func TestOnePoleHPFAttenuatesLows(t *testing.T) {
	lo := NewOnePoleHPF()
	lo.SetSampleRate(48000)
	lo.SetFreq(2000)
	low := peakAfterWarmup(lo.Next, 20, 48000)

	hi := NewOnePoleHPF()
	hi.SetSampleRate(48000)
	hi.SetFreq(2000)
	high := peakAfterWarmup(hi.Next, 15000, 48000)

	if low > 0.05 {
		t.Fatalf("stopband peak = %f, want strong attenuation", low)
	}
	if high < 0.8 {
		t.Fatalf("passband peak = %f, want ~1", high)
	}
}

func TestOnePoleResetKeepsCoefficient(t *testing.T) {
	f := NewOnePoleLPF()
	f.SetSampleRate(44100)
	f.SetFreq(1234)
	a, b := f.a, f.b
	for i := 0; i < 10; i++ {
		f.Next(1)
	}
	f.Reset()
	if f.y1 != 0 {
		t.Fatal("reset should clear memory")
	}
	if f.a != a || f.b != b {
		t.Fatal("reset must not touch the coefficient")
	}
}

func TestOnePoleCutoffClamped(t *testing.T) {
	f := NewOnePoleLPF()
	f.SetSampleRate(44100)
	f.SetFreq(90000)
	for i := 0; i < 1000; i++ {
		y := f.Next(sine(1000, 44100, i))
		if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
			t.Fatalf("non-finite output at %d", i)
		}
	}
}

func TestDCBlockConverges(t *testing.T) {
	d := NewDCBlock()
	d.SetSampleRate(44100)
	prev := math.Inf(1)
	for i := 0; i < 5000; i++ {
		y := math.Abs(float64(d.Next(0.5)))
		if y > prev {
			t.Fatalf("output grew at sample %d: %f > %f", i, y, prev)
		}
		prev = y
	}
	if prev > 1e-6 {
		t.Fatalf("output did not converge to 0, got %g", prev)
	}
}

func TestDCBlockSampleRatePole(t *testing.T) {
	d := NewDCBlock()
	for _, tc := range []struct {
		sr   float32
		want float64
	}{
		{44100, 0.995},
		{96000, 0.9965},
		{192000, 0.997},
	} {
		d.SetSampleRate(tc.sr)
		if d.r != tc.want {
			t.Errorf("sr %f: r = %f, want %f", tc.sr, d.r, tc.want)
		}
	}
}
