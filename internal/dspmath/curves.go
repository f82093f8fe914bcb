package dspmath

import "math"

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp blends from a (x=0) to b (x=1).
func Lerp(x, a, b float32) float32 {
	return a*(1-x) + b*x
}

func Lerp64(x, a, b float64) float64 {
	return a*(1-x) + b*x
}

// Crossfade mixes v1 into v2 by mix in [0, 1].
func Crossfade(v1, v2, mix float32) float32 {
	return v1*(1-mix) + v2*mix
}

// P2Range maps a normalized x in [0, 1] linearly onto [a, b].
func P2Range(x, a, b float32) float32 {
	return Lerp(x, a, b)
}

// P2RangeExp maps x onto [a, b] along x².
func P2RangeExp(x, a, b float32) float32 {
	x *= x
	return a*(1-x) + b*x
}

// P2RangeExp4 maps x onto [a, b] along x⁴.
func P2RangeExp4(x, a, b float32) float32 {
	x = x * x * x * x
	return a*(1-x) + b*x
}

// Range2P is the inverse of P2Range.
func Range2P(v, a, b float32) float32 {
	return abs32((v - a) / (b - a))
}

// Range2PExp is the inverse of P2RangeExp.
func Range2PExp(v, a, b float32) float32 {
	return sqrt32(abs32((v - a) / (b - a)))
}

// Range2PExp4 is the inverse of P2RangeExp4.
func Range2PExp4(v, a, b float32) float32 {
	return sqrt32(sqrt32(abs32((v - a) / (b - a))))
}

// Sqrt4ToPow4 bends x from x⁴ (v=0) over x (v=0.5) to the fourth root of x
// (v=1). Used to shape envelope segments.
func Sqrt4ToPow4(x, v float32) float32 {
	switch {
	case v > 0.75:
		xsq1 := sqrt32(x)
		xsq := sqrt32(xsq1)
		v = (v - 0.75) * 4
		return xsq1*(1-v) + xsq*v
	case v > 0.5:
		xsq := sqrt32(x)
		v = (v - 0.5) * 4
		return x*(1-v) + xsq*v
	case v > 0.25:
		xx := x * x
		v = (v - 0.25) * 4
		return x*v + xx*(1-v)
	default:
		xx := x * x
		xxxx := xx * xx
		v *= 4
		return xx*v + xxxx*(1-v)
	}
}

// Hermite performs 4-point, 3rd-order Hermite interpolation between x0 and
// x1. xm1 precedes x0 and x2 follows x1; frac is in [0, 1).
func Hermite(xm1, x0, x1, x2, frac float32) float32 {
	c := (x1 - xm1) * 0.5
	v := x0 - x1
	w := c + v
	a := w + v + (x2-x0)*0.5
	bNeg := w + a
	return ((a*frac-bNeg)*frac+c)*frac + x0
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
