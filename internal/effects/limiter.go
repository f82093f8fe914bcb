package effects

import (
	"math"

	"github.com/cbegin/modsynth-go/internal/dspmath"
)

// Limiter is a stereo linked peak limiter: a fast attack envelope follower
// pulls the gain down whenever the louder channel exceeds the ceiling.
type Limiter struct {
	ceiling float32
	attack  float32 // coefficient
	release float32 // coefficient
	env     float32
}

// NewLimiter creates a limiter with the ceiling in dB and attack/release in ms.
func NewLimiter(sampleRate int, ceilingDB, attackMs, releaseMs float32) *Limiter {
	return &Limiter{
		ceiling: dspmath.Gain2Coef(ceilingDB),
		attack:  envCoef(sampleRate, attackMs),
		release: envCoef(sampleRate, releaseMs),
	}
}

func envCoef(sampleRate int, ms float32) float32 {
	if ms <= 0 {
		return 1
	}
	return float32(1 - math.Exp(-1/(float64(ms)*float64(sampleRate)/1000)))
}

func (lim *Limiter) Process(l, r float32) (float32, float32) {
	peak := max(abs32(l), abs32(r))
	if peak > lim.env {
		lim.env += lim.attack * (peak - lim.env)
	} else {
		lim.env += lim.release * (peak - lim.env)
	}
	g := lim.Gain()
	return l * g, r * g
}

// Gain returns the gain reduction currently applied, 1 meaning none.
func (lim *Limiter) Gain() float32 {
	if lim.env <= lim.ceiling || lim.ceiling <= 0 {
		return 1
	}
	return lim.ceiling / lim.env
}

func (lim *Limiter) Reset() {
	lim.env = 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
