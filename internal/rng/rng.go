// Package rng provides the deterministic generators used for noise.
package rng

import (
	"math"
	"math/bits"
	"sync"
)

// Xoroshiro128 is the xoroshiro128+ generator. The zero value is not usable;
// construct it with NewXoroshiro128.
type Xoroshiro128 struct {
	s [2]uint64
}

func NewXoroshiro128() *Xoroshiro128 {
	return &Xoroshiro128{s: [2]uint64{0x193a6754a8a7d469, 0x97830e05113ba7bb}}
}

// NewXoroshiro128FromSeed expands seed into the generator state with
// SplitMix64, so nearby seeds give unrelated sequences.
func NewXoroshiro128FromSeed(seed uint64) *Xoroshiro128 {
	sm := NewSplitMix64(seed)
	r := &Xoroshiro128{s: [2]uint64{sm.NextU64(), sm.NextU64()}}
	if r.s[0] == 0 && r.s[1] == 0 {
		r.s[1] = 1
	}
	return r
}

func (r *Xoroshiro128) Next() uint64 {
	s0 := r.s[0]
	s1 := r.s[1]
	result := s0 + s1

	s1 ^= s0
	r.s[0] = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	r.s[1] = bits.RotateLeft64(s1, 36)
	return result
}

// NextOpen01 returns a uniform value in the open interval (0, 1).
func (r *Xoroshiro128) NextOpen01() float64 {
	return U64ToOpen01(r.Next())
}

// SplitMix64 is Vigna's splitmix64; any seed, including zero, is valid.
type SplitMix64 struct {
	state uint64
}

func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

func NewSplitMix64FromInt64(seed int64) *SplitMix64 {
	return NewSplitMix64(uint64(seed))
}

func (s *SplitMix64) NextU64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *SplitMix64) NextI64() int64 {
	return int64(s.NextU64())
}

func (s *SplitMix64) NextOpen01() float64 {
	return U64ToOpen01(s.NextU64())
}

// U64ToOpen01 maps the top 52 bits of u into (0, 1) by building a float in
// [1, 2) and shifting it down by just under one.
func U64ToOpen01(u uint64) float64 {
	const epsilon = 2.220446049250313e-16
	fraction := u >> (64 - 52)
	exponentBits := uint64(1023) << 52
	return math.Float64frombits(fraction|exponentBits) - (1 - epsilon/2)
}

const whiteNoiseTabSize = 1024

var (
	whiteNoiseOnce sync.Once
	whiteNoiseTab  [whiteNoiseTabSize]float64
)

// WhiteNoiseTable returns the process-wide table of uniform (0, 1) values.
// The first call fills it; callers must treat the result as read-only.
func WhiteNoiseTable() *[whiteNoiseTabSize]float64 {
	whiteNoiseOnce.Do(func() {
		r := NewXoroshiro128()
		for i := range whiteNoiseTab {
			whiteNoiseTab[i] = r.NextOpen01()
		}
	})
	return &whiteNoiseTab
}
