package effects

import (
	"math"
	"sync/atomic"

	"github.com/cbegin/modsynth-go/internal/filter"
)

const EQBands = 5

// EQCrossoversHz are the band edges of the master EQ.
var EQCrossoversHz = [EQBands - 1]float32{200, 800, 2500, 8000}

// EQ5Band splits the signal with cascaded one-pole low-passes and sums the
// bands back with individual gains. At unity gain the bands sum to the
// input. Gains are float32 bit patterns so the UI can change them while the
// audio goroutine reads them.
type EQ5Band struct {
	gains [EQBands]atomic.Uint32
	lpL   [EQBands - 1]*filter.OnePoleLPF
	lpR   [EQBands - 1]*filter.OnePoleLPF
}

func NewEQ5Band(sampleRate int) *EQ5Band {
	eq := &EQ5Band{}
	for i, hz := range EQCrossoversHz {
		eq.lpL[i] = filter.NewOnePoleLPF()
		eq.lpR[i] = filter.NewOnePoleLPF()
		eq.lpL[i].SetSampleRate(float32(sampleRate))
		eq.lpR[i].SetSampleRate(float32(sampleRate))
		eq.lpL[i].SetFreq(hz)
		eq.lpR[i].SetFreq(hz)
	}
	for i := range eq.gains {
		eq.gains[i].Store(math.Float32bits(1))
	}
	return eq
}

// SetGain sets the linear gain of band 0-4. 1 is unity. Other bands are
// ignored.
func (eq *EQ5Band) SetGain(band int, gain float32) {
	if band >= 0 && band < EQBands {
		if gain < 0 {
			gain = 0
		}
		eq.gains[band].Store(math.Float32bits(gain))
	}
}

func (eq *EQ5Band) Gain(band int) float32 {
	if band >= 0 && band < EQBands {
		return math.Float32frombits(eq.gains[band].Load())
	}
	return 1
}

func (eq *EQ5Band) Process(l, r float32) (float32, float32) {
	var outL, outR float32
	remL, remR := l, r
	for i := range eq.lpL {
		g := math.Float32frombits(eq.gains[i].Load())
		bl := eq.lpL[i].Next(remL)
		br := eq.lpR[i].Next(remR)
		outL += bl * g
		outR += br * g
		remL -= bl
		remR -= br
	}
	g := math.Float32frombits(eq.gains[EQBands-1].Load())
	return outL + remL*g, outR + remR*g
}

func (eq *EQ5Band) Reset() {
	for i := range eq.lpL {
		eq.lpL[i].Reset()
		eq.lpR[i].Reset()
	}
}
