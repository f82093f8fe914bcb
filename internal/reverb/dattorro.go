// Package reverb implements a stereo plate reverb after Jon Dattorro's
// figure-of-eight tank topology.
package reverb

import (
	"github.com/cbegin/modsynth-go/internal/delay"
	"github.com/cbegin/modsynth-go/internal/dspmath"
	"github.com/cbegin/modsynth-go/internal/filter"
	"github.com/cbegin/modsynth-go/internal/lfo"
)

const (
	// MaxSampleRate bounds the buffers allocated at construction.
	MaxSampleRate = 384000
	MaxPreDelayMs = 1000
	MinTimeScale  = 0.0001
	MaxTimeScale  = 4

	maxDecay  = 0.9999
	tapWeight = 0.6
	// float32 machine epsilon
	scaleEpsilon = 1.1920929e-07
)

// All delay lengths of the reference design are given in samples at 29761 Hz.
const refSampleRate = 29761.0

func refMs(samples float32) float32 {
	return samples * 1000 / refSampleRate
}

var (
	inputAPFTimesMs = [4]float32{refMs(141), refMs(107), refMs(379), refMs(277)}
	inputAPFGains   = [4]float32{0.75, 0.75, 0.625, 0.625}

	lfoFreqsHz  = [4]float32{0.1, 0.15, 0.12, 0.18}
	lfoPhases   = [4]float64{0, 0.25, 0.5, 0.75}
	excursionMs = refMs(16)
)

const (
	tankDiffusion1 = 0.7
	tankDiffusion2 = 0.5
)

// Tap positions into the tank lines. The left output reads the taps in this
// order from the right tank first, then the left one; the right output
// mirrors it.
var (
	leftTapsMs  = [7]float32{refMs(266), refMs(2974), refMs(1913), refMs(1996), refMs(1990), refMs(187), refMs(1066)}
	rightTapsMs = [7]float32{refMs(353), refMs(3627), refMs(1228), refMs(2673), refMs(2111), refMs(335), refMs(121)}
)

type tankTimes struct {
	apf1, apf2, delay1, delay2 float32
}

var (
	leftTankMs  = tankTimes{refMs(672), refMs(1800), refMs(4453), refMs(3720)}
	rightTankMs = tankTimes{refMs(908), refMs(2656), refMs(4217), refMs(3163)}
)

// tank is one half of the figure of eight.
type tank struct {
	nominal tankTimes
	cur     tankTimes

	apf1   *delay.AllPass
	lpf    *filter.OnePoleLPF
	hpf    *filter.OnePoleHPF
	delay1 *delay.Buffer
	apf2   *delay.AllPass
	delay2 *delay.Buffer

	out float32
}

func capacityFor(ms float32) int {
	return delay.SamplesFor(float64(ms*MaxTimeScale+excursionMs), MaxSampleRate)
}

func newTank(nominal tankTimes) *tank {
	return &tank{
		nominal: nominal,
		cur:     nominal,
		apf1:    delay.NewAllPass(capacityFor(nominal.apf1)),
		lpf:     filter.NewOnePoleLPF(),
		hpf:     filter.NewOnePoleHPF(),
		delay1:  delay.NewBufferWithSize(capacityFor(nominal.delay1)),
		apf2:    delay.NewAllPass(capacityFor(nominal.apf2)),
		delay2:  delay.NewBufferWithSize(capacityFor(nominal.delay2)),
	}
}

func (t *tank) setSampleRate(sr float32) {
	t.apf1.SetSampleRate(sr)
	t.lpf.SetSampleRate(sr)
	t.hpf.SetSampleRate(sr)
	t.delay1.SetSampleRate(sr)
	t.apf2.SetSampleRate(sr)
	t.delay2.SetSampleRate(sr)
}

func (t *tank) reset() {
	t.apf1.Reset()
	t.lpf.Reset()
	t.hpf.Reset()
	t.delay1.Reset()
	t.apf2.Reset()
	t.delay2.Reset()
	t.cur = t.nominal
	t.out = 0
}

func (t *tank) scale(s float32) {
	t.cur = tankTimes{
		apf1:   t.nominal.apf1 * s,
		apf2:   t.nominal.apf2 * s,
		delay1: t.nominal.delay1 * s,
		delay2: t.nominal.delay2 * s,
	}
}

// next runs one sample through the tank. mod1 and mod2 are the current
// modulation offsets in ms of the first all-pass and the first delay.
func (t *tank) next(x, apf1Gain, mod1, mod2 float32) {
	y := t.apf1.Next(t.cur.apf1+mod1, apf1Gain, x)
	y = t.lpf.Next(y)
	y = t.hpf.Next(y)

	d := t.delay1.Cubic(t.cur.delay1 + mod2)
	t.delay1.Feed(y)

	y = t.apf2.Next(t.cur.apf2, -tankDiffusion2, d)

	t.out = t.delay2.Cubic(t.cur.delay2)
	t.delay2.Feed(y)
}

// crossTaps is what this tank adds to the opposite output channel, ownTaps
// what it adds to its own.
func (t *tank) crossTaps(ms *[7]float32) float32 {
	return t.delay1.Cubic(ms[0]) + t.delay1.Cubic(ms[1]) - t.apf2.Tap(ms[2]) + t.delay2.Cubic(ms[3])
}

func (t *tank) ownTaps(ms *[7]float32) float32 {
	return -t.delay1.Cubic(ms[4]) - t.apf2.Tap(ms[5]) - t.delay2.Cubic(ms[6])
}

// Dattorro is the plate reverb. It outputs only the wet signal.
type Dattorro struct {
	srate     float32
	lastScale float32

	lastSpeed float32
	lastShape float32

	inDC  [2]*filter.DCBlock
	outDC [2]*filter.DCBlock

	inHPF *filter.OnePoleHPF
	inLPF *filter.OnePoleLPF

	preDelay *delay.Buffer
	inAPF    [4]*delay.AllPass

	lfos  [4]*lfo.TriSaw
	left  *tank
	right *tank
}

// New allocates every buffer the reverb will ever need.
func New() *Dattorro {
	d := &Dattorro{
		srate:    44100,
		inHPF:    filter.NewOnePoleHPF(),
		inLPF:    filter.NewOnePoleLPF(),
		preDelay: delay.NewBufferWithSize(delay.SamplesFor(MaxPreDelayMs, MaxSampleRate)),
		left:     newTank(leftTankMs),
		right:    newTank(rightTankMs),
	}
	for i := range d.inDC {
		d.inDC[i] = filter.NewDCBlock()
		d.outDC[i] = filter.NewDCBlock()
	}
	for i := range d.inAPF {
		d.inAPF[i] = delay.NewAllPass(delay.SamplesFor(float64(inputAPFTimesMs[i]), MaxSampleRate))
	}
	for i := range d.lfos {
		d.lfos[i] = lfo.NewTriSaw()
	}
	d.SetSampleRate(d.srate)
	d.Reset()
	return d
}

// SetSampleRate propagates sr to every element. Rates above MaxSampleRate
// are clamped.
func (d *Dattorro) SetSampleRate(sr float32) {
	sr = dspmath.Clamp(sr, 1, MaxSampleRate)
	d.srate = sr
	for i := range d.inDC {
		d.inDC[i].SetSampleRate(sr)
		d.outDC[i].SetSampleRate(sr)
	}
	d.inHPF.SetSampleRate(sr)
	d.inLPF.SetSampleRate(sr)
	d.preDelay.SetSampleRate(sr)
	for _, a := range d.inAPF {
		a.SetSampleRate(sr)
	}
	for _, l := range d.lfos {
		l.SetSampleRate(sr)
	}
	d.left.setSampleRate(sr)
	d.right.setSampleRate(sr)
}

func (d *Dattorro) SampleRate() float32 { return d.srate }

// Reset silences every line and restores the reference plate.
func (d *Dattorro) Reset() {
	for i := range d.inDC {
		d.inDC[i].Reset()
		d.outDC[i].Reset()
	}
	d.inHPF.Reset()
	d.inLPF.Reset()
	d.inHPF.SetFreq(0)
	d.inLPF.SetFreq(22000)
	d.preDelay.Reset()
	for _, a := range d.inAPF {
		a.Reset()
	}

	for _, t := range []*tank{d.left, d.right} {
		t.reset()
		t.lpf.SetFreq(10000)
		t.hpf.SetFreq(0)
	}

	d.lastSpeed = 1
	d.lastShape = 0.5
	for i, l := range d.lfos {
		l.Set(lfoFreqsHz[i], 0.5)
		l.SetPhaseOffs(lfoPhases[i])
		l.Reset()
	}
	d.lastScale = 1
}

// SetTimeScale stretches the tank. The scale is clamped to
// [MinTimeScale, MaxTimeScale] and only applied when it actually changed.
func (d *Dattorro) SetTimeScale(scale float32) {
	scale = dspmath.Clamp(scale, MinTimeScale, MaxTimeScale)
	diff := d.lastScale - scale
	if diff < 0 {
		diff = -diff
	}
	if diff <= scaleEpsilon {
		return
	}
	d.lastScale = scale
	d.left.scale(scale)
	d.right.scale(scale)
}

func (d *Dattorro) TimeScale() float32 { return d.lastScale }

// TankAllPassTimesMs returns the applied all-pass lengths as
// left APF1, right APF1, left APF2, right APF2.
func (d *Dattorro) TankAllPassTimesMs() [4]float32 {
	return [4]float32{d.left.cur.apf1, d.right.cur.apf1, d.left.cur.apf2, d.right.cur.apf2}
}

// TankDelayTimesMs returns left delay1, right delay1, left delay2, right delay2.
func (d *Dattorro) TankDelayTimesMs() [4]float32 {
	return [4]float32{d.left.cur.delay1, d.right.cur.delay1, d.left.cur.delay2, d.right.cur.delay2}
}

func (d *Dattorro) InputAllPassTimesMs() [4]float32 {
	return inputAPFTimesMs
}

func (d *Dattorro) applyParams(p *Params) {
	d.SetTimeScale(p.TimeScale)

	d.inHPF.SetFreq(p.InputLowCutHz)
	d.inLPF.SetFreq(p.InputHighCutHz)
	d.left.hpf.SetFreq(p.ReverbLowCutHz)
	d.right.hpf.SetFreq(p.ReverbLowCutHz)
	d.left.lpf.SetFreq(p.ReverbHighCutHz)
	d.right.lpf.SetFreq(p.ReverbHighCutHz)

	if p.ModSpeed != d.lastSpeed || p.ModShape != d.lastShape {
		d.lastSpeed = p.ModSpeed
		d.lastShape = p.ModShape
		speed := p.ModSpeed
		if speed < 0 {
			speed = 0
		}
		for i, l := range d.lfos {
			l.Set(lfoFreqsHz[i]*speed, p.ModShape)
		}
	}
}

// Process runs one stereo frame and returns the wet output.
func (d *Dattorro) Process(p *Params, inL, inR float32) (float32, float32) {
	d.applyParams(p)

	x := (d.inDC[0].Next(inL) + d.inDC[1].Next(inR)) * 0.5
	x = d.inHPF.Next(x)
	x = d.inLPF.Next(x)

	d.preDelay.Feed(x)
	x = d.preDelay.Cubic(dspmath.Clamp(p.PreDelayMs, 0, MaxPreDelayMs))

	diffused := x
	for i, a := range d.inAPF {
		diffused = a.Next(inputAPFTimesMs[i], inputAPFGains[i], diffused)
	}
	x = dspmath.Lerp(dspmath.Clamp(p.InputDiffusionMix, 0, 1), x, diffused)

	decay := dspmath.Clamp(p.Decay, 0, maxDecay)
	apf1Gain := -tankDiffusion1 * dspmath.Clamp(p.Diffusion, 0, 1)
	exc := excursionMs * dspmath.Clamp(p.ModDepth, 0, 1)

	leftIn := x + decay*d.right.out
	rightIn := x + decay*d.left.out

	d.left.next(leftIn, apf1Gain,
		float32(d.lfos[0].NextUnipolar())*exc,
		float32(d.lfos[2].NextUnipolar())*exc)
	d.right.next(rightIn, apf1Gain,
		float32(d.lfos[1].NextUnipolar())*exc,
		float32(d.lfos[3].NextUnipolar())*exc)

	outL := d.right.crossTaps(&leftTapsMs) + d.left.ownTaps(&leftTapsMs)
	outR := d.left.crossTaps(&rightTapsMs) + d.right.ownTaps(&rightTapsMs)

	return d.outDC[0].Next(outL * tapWeight), d.outDC[1].Next(outR * tapWeight)
}
