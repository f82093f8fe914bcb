package filter

// DCBlock removes DC offset with y = x − x₁ + r·y₁. The pole radius moves
// closer to 1 at high sample rates to keep the cutoff low in absolute terms.
type DCBlock struct {
	xm1 float64
	ym1 float64
	r   float64
}

func NewDCBlock() *DCBlock {
	return &DCBlock{r: 0.995}
}

func (d *DCBlock) Reset() {
	d.xm1 = 0
	d.ym1 = 0
}

func (d *DCBlock) SetSampleRate(sr float32) {
	switch {
	case sr > 120000:
		d.r = 0.997
	case sr > 90000:
		d.r = 0.9965
	default:
		d.r = 0.995
	}
}

func (d *DCBlock) Next(x float32) float32 {
	y := float64(x) - d.xm1 + d.r*d.ym1
	d.xm1 = float64(x)
	d.ym1 = y
	return float32(y)
}
