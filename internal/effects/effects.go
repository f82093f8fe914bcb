// Package effects holds the master stage a player applies after the rack:
// a tone EQ and a peak limiter.
package effects

import "sync/atomic"

// Effector processes one stereo frame.
type Effector interface {
	Process(l, r float32) (float32, float32)
	Reset()
}

type stage struct {
	fx     Effector
	bypass atomic.Bool
}

// Chain runs effects in order over interleaved buffers. Each stage can be
// bypassed while audio is running.
type Chain struct {
	stages []*stage
}

func NewChain(effects ...Effector) *Chain {
	c := &Chain{stages: make([]*stage, len(effects))}
	for i, fx := range effects {
		c.stages[i] = &stage{fx: fx}
	}
	return c
}

// ProcessInterleaved runs the chain over L,R frame pairs in place.
func (c *Chain) ProcessInterleaved(buf []float32) {
	for _, st := range c.stages {
		if st.bypass.Load() {
			continue
		}
		for i := 0; i+1 < len(buf); i += 2 {
			buf[i], buf[i+1] = st.fx.Process(buf[i], buf[i+1])
		}
	}
}

// SetBypass skips stage i. Out of range indexes are ignored.
func (c *Chain) SetBypass(i int, on bool) {
	if i >= 0 && i < len(c.stages) {
		c.stages[i].bypass.Store(on)
	}
}

func (c *Chain) Bypassed(i int) bool {
	return i >= 0 && i < len(c.stages) && c.stages[i].bypass.Load()
}

func (c *Chain) Reset() {
	for _, st := range c.stages {
		st.fx.Reset()
	}
}

func (c *Chain) Len() int { return len(c.stages) }
