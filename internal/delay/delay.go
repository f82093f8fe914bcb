// Package delay provides the ring buffer delay line and the all-pass
// diffuser built on top of it.
package delay

import (
	"math"

	"github.com/cbegin/modsynth-go/internal/dspmath"
)

// DefaultBufferSamples is 5 seconds at 8 times 48kHz.
const DefaultBufferSamples = 8 * 48000 * 5

const minBufferSamples = 4

// Buffer is a fixed capacity ring of samples. It never reallocates after
// construction; asking for a delay longer than Len samples is a caller bug.
type Buffer struct {
	data  []float32
	wr    int
	srate float32
}

func NewBuffer() *Buffer {
	return NewBufferWithSize(DefaultBufferSamples)
}

func NewBufferWithSize(size int) *Buffer {
	if size < minBufferSamples {
		size = minBufferSamples
	}
	return &Buffer{
		data:  make([]float32, size),
		srate: 44100,
	}
}

// SamplesFor returns the capacity needed to delay ms milliseconds at
// sampleRate, including headroom for the interpolation neighbours.
func SamplesFor(ms, sampleRate float64) int {
	return int(math.Ceil(ms*sampleRate/1000)) + minBufferSamples
}

func (b *Buffer) SetSampleRate(sr float32) {
	b.srate = sr
}

func (b *Buffer) SampleRate() float32 { return b.srate }

// Len returns the capacity in samples.
func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.wr = 0
}

// Feed writes the newest sample and advances the cursor.
func (b *Buffer) Feed(x float32) {
	b.data[b.wr] = x
	b.wr++
	if b.wr == len(b.data) {
		b.wr = 0
	}
}

// At returns the sample fed n feeds ago. At(0) is the most recent sample.
func (b *Buffer) At(n int) float32 {
	l := len(b.data)
	idx := (b.wr - 1 - n%l) % l
	if idx < 0 {
		idx += l
	}
	return b.data[idx]
}

// Nearest reads the sample closest to ms milliseconds in the past.
func (b *Buffer) Nearest(ms float32) float32 {
	offs := math.Round(float64(ms) * float64(b.srate) / 1000)
	if offs < 0 {
		offs = 0
	}
	return b.At(int(offs))
}

// Cubic reads ms milliseconds in the past with Hermite interpolation over the
// four surrounding samples.
func (b *Buffer) Cubic(ms float32) float32 {
	offs := float64(ms) * float64(b.srate) / 1000
	if offs < 0 {
		offs = 0
	}
	k := int(offs)
	frac := float32(offs - float64(k))

	// There is nothing newer than At(0); repeat it at the edge.
	newer := b.At(0)
	if k > 0 {
		newer = b.At(k - 1)
	}
	return dspmath.Hermite(newer, b.At(k), b.At(k+1), b.At(k+2), frac)
}
