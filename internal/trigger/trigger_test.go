package trigger

import (
	"math"
	"testing"
)

func TestTriggerBelowThresholdNeverFires(t *testing.T) {
	var tr Trigger
	for i := 0; i < 1000; i++ {
		v := float32(0.25 * math.Abs(math.Sin(float64(i)*0.01)))
		if tr.Check(v) {
			t.Fatalf("unexpected trigger at %d for input %f", i, v)
		}
	}
}

func TestTriggerSingleEdge(t *testing.T) {
	var tr Trigger
	count := 0
	for i := 0; i < 100; i++ {
		v := float32(0)
		if i >= 10 {
			v = 1
		}
		if tr.Check(v) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("rising edge reported %d times, want 1", count)
	}
}

func TestTriggerNeedsReleaseBeforeRetrigger(t *testing.T) {
	var tr Trigger
	if !tr.Check(1) {
		t.Fatal("first edge should trigger")
	}
	// Dip that stays above the release threshold.
	tr.Check(0.3)
	if tr.Check(1) {
		t.Fatal("second edge without release must not trigger")
	}
	tr.Check(0.2)
	if !tr.Check(0.9) {
		t.Fatal("edge after release should trigger")
	}
}

func TestTriggerReset(t *testing.T) {
	var tr Trigger
	tr.Check(1)
	tr.Reset()
	if !tr.Check(1) {
		t.Fatal("reset should re-arm the detector")
	}
}

// pulseTrain returns 1 for the first few samples of every period.
func pulseTrain(i, period int) float32 {
	if i%period < 3 {
		return 1
	}
	return 0
}

func TestSampleClockMeasuresPeriod(t *testing.T) {
	c := NewSampleClock()
	var got uint32
	for i := 1; i < 500; i++ {
		got = c.Next(pulseTrain(i, 100))
		if i < 200 && got != 0 {
			t.Fatalf("sample %d: clock reported %d before two edges", i, got)
		}
	}
	if got != 100 {
		t.Fatalf("measured period %d, want 100", got)
	}
}

func TestPhaseClockRamp(t *testing.T) {
	c := NewPhaseClock()
	var last float64
	for i := 1; i < 450; i++ {
		last = c.NextPhase(1, pulseTrain(i, 100))
		if last < 0 || last >= 1 {
			t.Fatalf("phase %f outside [0, 1)", last)
		}
	}
	// Increment is 1/100 per sample once two edges were seen.
	before := c.NextPhase(1, 0)
	after := c.NextPhase(1, 0)
	d := after - before
	if d < 0 {
		d += 1
	}
	if math.Abs(d-0.01) > 1e-9 {
		t.Fatalf("phase increment %f, want 0.01", d)
	}
	c.Reset()
	if p := c.NextPhase(1, 0); p != 0 {
		t.Fatalf("phase after reset = %f, want 0", p)
	}
}

func TestSignalPulseLength(t *testing.T) {
	s := NewSignal()
	s.SetSampleRate(48000)
	s.Trigger()
	n := 0
	for i := 0; i < 1000; i++ {
		if s.Next() > 0 {
			n++
		}
	}
	if n != 96 {
		t.Fatalf("pulse lasted %d samples, want 96", n)
	}
}
