package lfo

import "math"

const (
	minRev = 0.0001
	maxRev = 0.999
)

// TriSaw is a low-frequency oscillator whose waveform morphs between a
// rising saw (rev near 1), a symmetric triangle (rev 0.5) and a falling saw
// (rev near 0). The phase is accumulated, so frequency and shape may change on
// every sample without discontinuities.
type TriSaw struct {
	phase     float64 // current phase [0, 1)
	initPhase float64 // phase restored by Reset
	inc       float64 // phase increment per sample
	freq      float64 // oscillation rate in Hz
	rev       float64 // fraction of the cycle spent rising
	riseR     float64
	fallR     float64
	srate     float64
}

func NewTriSaw() *TriSaw {
	l := &TriSaw{srate: 44100, freq: 1, rev: 0.5}
	l.recalc()
	return l
}

func (l *TriSaw) recalc() {
	if l.rev < minRev {
		l.rev = minRev
	} else if l.rev > maxRev {
		l.rev = maxRev
	}
	l.riseR = 1 / l.rev
	l.fallR = -1 / (1 - l.rev)
	l.inc = l.freq / l.srate
}

func (l *TriSaw) SetSampleRate(sr float32) {
	l.srate = float64(sr)
	l.recalc()
}

// Set configures the frequency in Hz and the reverse point rev in [0, 1].
func (l *TriSaw) Set(freqHz, rev float32) {
	if freqHz < 0 {
		freqHz = 0
	}
	l.freq = float64(freqHz)
	l.rev = float64(rev)
	l.recalc()
}

// SetPhaseOffs sets the phase that Reset returns to and jumps there.
func (l *TriSaw) SetPhaseOffs(p float64) {
	p -= math.Floor(p)
	l.initPhase = p
	l.phase = p
}

func (l *TriSaw) Reset() {
	l.phase = l.initPhase
}

func (l *TriSaw) Phase() float64 { return l.phase }

// NextUnipolar returns the current value in [0, 1] and advances the phase.
func (l *TriSaw) NextUnipolar() float64 {
	var s float64
	if l.phase < l.rev {
		s = l.phase * l.riseR
	} else {
		s = l.phase*l.fallR - l.fallR
	}

	l.phase += l.inc
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}
	return s
}

// NextBipolar returns the current value mapped to [-1, 1].
func (l *TriSaw) NextBipolar() float64 {
	return l.NextUnipolar()*2 - 1
}
