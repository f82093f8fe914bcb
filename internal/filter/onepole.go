// Package filter contains the single pole filters used for tone shaping
// inside feedback loops and the DC blocker.
package filter

import "math"

const maxCutoffRatio = 0.49

// onePole holds the coefficient bookkeeping shared by the low and high pass.
type onePole struct {
	srate float32
	freq  float32
	b     float32
}

func (p *onePole) recalc() {
	f := p.freq
	if limit := p.srate * maxCutoffRatio; f > limit {
		f = limit
	}
	if f < 0 {
		f = 0
	}
	p.b = float32(math.Exp(-2 * math.Pi * float64(f) / float64(p.srate)))
}

// OnePoleLPF is a single pole low-pass: y = a·x + b·y₁.
type OnePoleLPF struct {
	onePole
	a  float32
	y1 float32
}

func NewOnePoleLPF() *OnePoleLPF {
	f := &OnePoleLPF{onePole: onePole{srate: 44100, freq: 1000}}
	f.recalc()
	return f
}

func (f *OnePoleLPF) recalc() {
	f.onePole.recalc()
	f.a = 1 - f.b
}

func (f *OnePoleLPF) SetSampleRate(sr float32) {
	f.srate = sr
	f.recalc()
}

// SetFreq sets the cutoff in Hz. The coefficient is only recomputed when the
// cutoff actually changes.
func (f *OnePoleLPF) SetFreq(hz float32) {
	if hz == f.freq {
		return
	}
	f.freq = hz
	f.recalc()
}

func (f *OnePoleLPF) Reset() {
	f.y1 = 0
}

func (f *OnePoleLPF) Next(x float32) float32 {
	f.y1 = f.a*x + f.b*f.y1
	return f.y1
}

// OnePoleHPF is a single pole high-pass: y = a·x − a·x₁ + b·y₁.
type OnePoleHPF struct {
	onePole
	a  float32
	x1 float32
	y1 float32
}

func NewOnePoleHPF() *OnePoleHPF {
	f := &OnePoleHPF{onePole: onePole{srate: 44100, freq: 1000}}
	f.recalc()
	return f
}

func (f *OnePoleHPF) recalc() {
	f.onePole.recalc()
	f.a = (1 + f.b) / 2
}

func (f *OnePoleHPF) SetSampleRate(sr float32) {
	f.srate = sr
	f.recalc()
}

func (f *OnePoleHPF) SetFreq(hz float32) {
	if hz == f.freq {
		return
	}
	f.freq = hz
	f.recalc()
}

func (f *OnePoleHPF) Reset() {
	f.x1 = 0
	f.y1 = 0
}

func (f *OnePoleHPF) Next(x float32) float32 {
	y := f.a*x - f.a*f.x1 + f.b*f.y1
	f.x1 = x
	f.y1 = y
	return y
}
