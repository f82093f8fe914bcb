// Package trigger turns continuous control signals into discrete events.
// All detectors use the same hysteresis: a signal must rise above 0.75 to
// trigger and fall to 0.25 or below before it can trigger again.
package trigger

import "math"

const (
	riseThreshold = 0.75
	fallThreshold = 0.25
)

// Trigger reports each rising edge exactly once.
type Trigger struct {
	triggered bool
}

func (t *Trigger) Reset() {
	t.triggered = false
}

// Check returns true on the sample where input first rises above the
// threshold.
func (t *Trigger) Check(input float32) bool {
	if t.triggered {
		if input <= fallThreshold {
			t.triggered = false
		}
		return false
	}
	if input > riseThreshold {
		t.triggered = true
		return true
	}
	return false
}

// PhaseClock derives a phase ramp from a trigger train: each period of the
// ramp lasts as long as the distance between the last two triggers.
type PhaseClock struct {
	phase       float64
	inc         float64
	prevTrigger bool
	seenEdge    bool
	samples     uint32
}

func NewPhaseClock() *PhaseClock {
	return &PhaseClock{prevTrigger: true}
}

func (c *PhaseClock) Reset() {
	c.phase = 0
	c.inc = 0
	c.prevTrigger = true
	c.seenEdge = false
	c.samples = 0
}

// NextPhase advances the clock by one sample and returns the phase wrapped
// into [0, clockLimit).
func (c *PhaseClock) NextPhase(clockLimit float64, triggerIn float32) float64 {
	if c.prevTrigger {
		if triggerIn <= fallThreshold {
			c.prevTrigger = false
		}
	} else if triggerIn > riseThreshold {
		c.prevTrigger = true
		if c.seenEdge && c.samples > 0 {
			c.inc = 1 / float64(c.samples)
		}
		c.seenEdge = true
		c.samples = 0
	}

	c.samples++
	c.phase += c.inc
	if clockLimit > 0 {
		c.phase = math.Mod(c.phase, clockLimit)
	}
	return c.phase
}

// SampleClock measures the distance in samples between the two most recent
// triggers. It reports 0 until two triggers have been seen.
type SampleClock struct {
	prevTrigger bool
	seenEdge    bool
	samples     uint32
	counter     uint32
}

func NewSampleClock() *SampleClock {
	return &SampleClock{prevTrigger: true}
}

func (c *SampleClock) Reset() {
	c.prevTrigger = true
	c.seenEdge = false
	c.samples = 0
	c.counter = 0
}

func (c *SampleClock) Next(triggerIn float32) uint32 {
	if c.prevTrigger {
		if triggerIn <= fallThreshold {
			c.prevTrigger = false
		}
	} else if triggerIn > riseThreshold {
		c.prevTrigger = true
		if c.seenEdge {
			c.samples = c.counter
		}
		c.seenEdge = true
		c.counter = 0
	}

	c.counter++
	return c.samples
}
