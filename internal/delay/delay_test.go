package delay

import (
	"math"
	"testing"
)

func TestBufferImpulseAt(t *testing.T) {
	for _, n := range []int{0, 1, 7, 63} {
		b := NewBufferWithSize(64)
		b.Feed(1)
		for i := 0; i < n; i++ {
			b.Feed(0)
		}
		if got := b.At(n); got != 1 {
			t.Errorf("At(%d) after %d feeds = %f, want 1", n, n, got)
		}
		if n > 0 && b.At(n-1) != 0 {
			t.Errorf("At(%d) should still be silent", n-1)
		}
	}
}

func TestBufferWrapsAround(t *testing.T) {
	b := NewBufferWithSize(16)
	for i := 0; i < 100; i++ {
		b.Feed(float32(i))
	}
	if got := b.At(0); got != 99 {
		t.Fatalf("At(0) = %f, want 99", got)
	}
	if got := b.At(15); got != 84 {
		t.Fatalf("At(15) = %f, want 84", got)
	}
	// Requests past the capacity wrap instead of panicking.
	_ = b.At(1000)
}

func TestBufferNearestRounds(t *testing.T) {
	b := NewBufferWithSize(128)
	b.SetSampleRate(1000)
	for i := 0; i < 50; i++ {
		b.Feed(float32(i))
	}
	// 3.4 ms at 1 kHz is 3.4 samples -> 3 samples back.
	if got := b.Nearest(3.4); got != 46 {
		t.Fatalf("Nearest(3.4) = %f, want 46", got)
	}
	// 3.6 ms rounds up to 4 samples back.
	if got := b.Nearest(3.6); got != 45 {
		t.Fatalf("Nearest(3.6) = %f, want 45", got)
	}
}

func TestBufferCubicBetweenNeighbours(t *testing.T) {
	b := NewBufferWithSize(128)
	b.SetSampleRate(1000)
	for i := 0; i < 32; i++ {
		b.Feed(float32(i))
	}
	for _, ms := range []float32{2.25, 5.5, 10.75} {
		got := b.Cubic(ms)
		k := int(ms)
		newerV, olderV := b.At(k), b.At(k+1)
		lo, hi := olderV, newerV
		if lo > hi {
			lo, hi = hi, lo
		}
		if got < lo-1e-4 || got > hi+1e-4 {
			t.Errorf("Cubic(%f) = %f, want within [%f, %f]", ms, got, lo, hi)
		}
	}
	if got := b.Cubic(4); got != b.At(4) {
		t.Fatalf("integer Cubic(4) = %f, want exact %f", got, b.At(4))
	}
}

func TestBufferReadsDoNotMutate(t *testing.T) {
	b := NewBufferWithSize(32)
	b.SetSampleRate(1000)
	for i := 0; i < 10; i++ {
		b.Feed(float32(i))
	}
	first := b.Cubic(3.3)
	for i := 0; i < 5; i++ {
		_ = b.At(2)
		_ = b.Nearest(1)
		if got := b.Cubic(3.3); got != first {
			t.Fatalf("repeat read %d changed: %f != %f", i, got, first)
		}
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBufferWithSize(8)
	for i := 0; i < 8; i++ {
		b.Feed(1)
	}
	b.Reset()
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != 0 {
			t.Fatalf("sample %d not cleared", i)
		}
	}
}

func TestSamplesForCoversDelay(t *testing.T) {
	n := SamplesFor(100, 48000)
	if n < 4800 {
		t.Fatalf("SamplesFor(100ms, 48k) = %d, want >= 4800", n)
	}
}

func TestAllPassPreservesEnergy(t *testing.T) {
	a := NewAllPass(64)
	a.SetSampleRate(1000)
	var energy float64
	for i := 0; i < 4000; i++ {
		x := float32(0)
		if i == 0 {
			x = 1
		}
		y := float64(a.Next(10, 0.5, x))
		energy += y * y
	}
	if math.Abs(energy-1) > 1e-4 {
		t.Fatalf("all-pass impulse energy = %f, want 1", energy)
	}
}

func TestAllPassFirstSampleIsGain(t *testing.T) {
	a := NewAllPass(64)
	a.SetSampleRate(1000)
	if got := a.Next(10, -0.7, 1); math.Abs(float64(got)+0.7) > 1e-6 {
		t.Fatalf("first output = %f, want -0.7", got)
	}
}
