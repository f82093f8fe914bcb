package delay

// AllPass is a Schroeder all-pass diffuser. The delay time is passed on every
// call, so modulating it only moves the read point; the stored signal is kept.
type AllPass struct {
	buf *Buffer
}

func NewAllPass(capacity int) *AllPass {
	return &AllPass{buf: NewBufferWithSize(capacity)}
}

func (a *AllPass) SetSampleRate(sr float32) {
	a.buf.SetSampleRate(sr)
}

func (a *AllPass) Reset() {
	a.buf.Reset()
}

// Len returns the capacity of the internal delay in samples.
func (a *AllPass) Len() int { return a.buf.Len() }

// Next runs one sample through the diffuser with gain g and a delay of ms.
func (a *AllPass) Next(ms, g, x float32) float32 {
	s := a.buf.Cubic(ms)
	w := x - g*s
	a.buf.Feed(w)
	return g*w + s
}

// Tap reads the internal delay line ms milliseconds in the past.
func (a *AllPass) Tap(ms float32) float32 {
	return a.buf.Cubic(ms)
}
