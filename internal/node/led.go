package node

import (
	"math"
	"sync/atomic"
)

// LedValue is a float32 that the audio goroutine writes and UI goroutines
// read without locking.
type LedValue struct {
	bits atomic.Uint32
}

func (l *LedValue) Set(v float32) { l.bits.Store(math.Float32bits(v)) }

func (l *LedValue) Get() float32 { return math.Float32frombits(l.bits.Load()) }

// LedValues holds one LED per node output.
type LedValues []LedValue

func NewLedValues(n int) LedValues {
	return make(LedValues, n)
}

// Set ignores outputs without an LED.
func (l LedValues) Set(i int, v float32) {
	if i < len(l) {
		l[i].Set(v)
	}
}

func (l LedValues) Get(i int) float32 {
	if i < len(l) {
		return l[i].Get()
	}
	return 0
}
