package trigger

import "math"

// signalLengthMs is the pulse length; Eurorack triggers are usually 2-10 ms.
const signalLengthMs = 2.0

// Signal emits a short 1.0 pulse after Trigger is called.
type Signal struct {
	length uint32
	count  uint32
}

func NewSignal() *Signal {
	s := &Signal{}
	s.SetSampleRate(44100)
	return s
}

func (s *Signal) SetSampleRate(sr float32) {
	s.length = uint32(math.Ceil(float64(sr) * signalLengthMs / 1000))
	s.count = 0
}

func (s *Signal) Reset() {
	s.count = 0
}

func (s *Signal) Trigger() {
	s.count = s.length
}

func (s *Signal) Next() float32 {
	if s.count > 0 {
		s.count--
		return 1
	}
	return 0
}
