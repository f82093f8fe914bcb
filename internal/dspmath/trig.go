// Package dspmath holds the stateless numeric helpers shared by the
// primitives and nodes: table based trigonometry, range mapping, shaping
// curves and interpolation.
package dspmath

import (
	"math"
	"sync"
)

const (
	cosTabLog2Size = 9
	cosTabSize     = 1 << cosTabLog2Size

	twoPi      = 2 * math.Pi
	phaseScale = float32(1 / twoPi)
)

var (
	cosTabOnce sync.Once
	cosTab     [cosTabSize + 1]float32
)

// InitTables fills the process-wide cosine table. It is safe to call any
// number of times from any goroutine; the table is immutable afterwards.
func InitTables() {
	cosTabOnce.Do(func() {
		for i := range cosTab {
			phase := float64(i) * (twoPi / cosTabSize)
			cosTab[i] = float32(math.Cos(phase))
		}
	})
}

// FastCos approximates cos(x) by linear interpolation over a 512 entry table.
func FastCos(x float32) float32 {
	InitTables()
	if x < 0 {
		x = -x
	}
	phase := x * phaseScale
	phase -= float32(math.Floor(float64(phase)))

	index := cosTabSize * phase
	i := int(index)
	fract := index - float32(i)
	if i >= cosTabSize {
		i = cosTabSize - 1
		fract = 1
	}
	left := cosTab[i]
	right := cosTab[i+1]
	return left + (right-left)*fract
}

// FastSin approximates sin(x) through FastCos.
func FastSin(x float32) float32 {
	return FastCos(x - math.Pi/2)
}

// SquareFast135 is a band limited square approximation from the first
// three odd harmonics.
func SquareFast135(phase float32) float32 {
	return FastSin(phase) +
		FastSin(phase*3)/3 +
		FastSin(phase*5)/5
}

// SquareFast35 is SquareFast135 without the fundamental.
func SquareFast35(phase float32) float32 {
	return FastSin(phase*3)/3 +
		FastSin(phase*5)/5
}
