package dspmath

import "math"

// Distort is a soft saturating distortion.
// gain: 0.1..5 (default 1), threshold: 0..100 (default 0.8).
func Distort(gain, threshold, x float32) float32 {
	ax := abs32(x)
	return gain * (x * (ax + threshold) / (x*x + (threshold-1)*ax + 1))
}

// FoldDistort folds the signal back whenever it leaves ±threshold.
func FoldDistort(gain, threshold, x float32) float32 {
	if x >= threshold || x < -threshold {
		folded := float32(math.Mod(float64(x-threshold), float64(threshold))) * 4
		return gain * (abs32(abs32(folded)-threshold*2) - threshold)
	}
	return gain * x
}

// QuickerTanh is a low order rational tanh approximation.
func QuickerTanh(v float32) float32 {
	square := v * v
	return v / (1 + square/(3+square/5))
}

func QuickerTanh64(v float64) float64 {
	square := v * v
	return v / (1 + square/(3+square/5))
}

// QuickTanh is a more accurate rational tanh approximation than QuickerTanh.
func QuickTanh(v float32) float32 {
	return float32(QuickTanh64(float64(v)))
}

func QuickTanh64(v float64) float64 {
	absV := math.Abs(v)
	square := v * v
	num := v * (2.45550750702956 +
		2.45550750702956*absV +
		square*(0.893229853513558+0.821226666969744*absV))
	den := 2.44506634652299 +
		(2.44506634652299+square)*math.Abs(v+0.814642734961073*v*absV)
	return num / den
}

// Gain2Coef converts decibels to a linear factor; -90 dB and below is silence.
func Gain2Coef(db float32) float32 {
	if db > -90 {
		return float32(math.Pow(10, float64(db)*0.05))
	}
	return 0
}

// NoteToFreq converts a MIDI note number to Hz (A4 = 69 = 440 Hz).
func NoteToFreq(note float32) float32 {
	return 440 * float32(math.Pow(2, float64(note-69)/12))
}
