package main

import (
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/cbegin/modsynth-go"
)

const (
	scopeLen   = 2048
	ringBufLen = 65536
	graphSteps = 256
)

// tap keeps the most recent output for the scope.
type tap struct {
	mu          sync.Mutex
	ring        []float32 // mono
	writePos    int
	totalTapped int64
}

func newTap() *tap {
	return &tap{ring: make([]float32, ringBufLen)}
}

// Tap is called from the audio thread. Keep it minimal: just copy into ring.
func (a *tap) Tap(samples []float32) {
	a.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		a.ring[a.writePos] = (samples[i] + samples[i+1]) * 0.5
		a.writePos = (a.writePos + 1) % ringBufLen
		a.totalTapped++
	}
	a.mu.Unlock()
}

// Snapshot copies n samples aligned to what the listener hears.
func (a *tap) Snapshot(n int, playbackPos int64) []float32 {
	if n > ringBufLen {
		n = ringBufLen
	}
	out := make([]float32, n)
	a.mu.Lock()
	delay := int(a.totalTapped - playbackPos)
	if delay < 0 {
		delay = 0
	}
	if delay > ringBufLen-n {
		delay = ringBufLen - n
	}
	start := (a.writePos - delay - n + ringBufLen*2) % ringBufLen
	for i := 0; i < n; i++ {
		out[i] = a.ring[(start+i)%ringBufLen]
	}
	a.mu.Unlock()
	return out
}

func (g *game) drawScope(screen *ebiten.Image, rect image.Rectangle) {
	inner := rect.Inset(8)
	width, height := inner.Dx(), inner.Dy()
	if width < 2 || height < 4 {
		return
	}
	if g.scopeImg == nil || g.scopeImg.Bounds().Dx() != width || g.scopeImg.Bounds().Dy() != height {
		g.scopeImg = ebiten.NewImage(width, height)
	}
	g.scopeImg.Fill(scopeBgColor)

	samples := g.tap.Snapshot(scopeLen, g.player.PlaybackPosition())
	midY := height / 2
	ebitenutil.DrawRect(g.scopeImg, 0, float64(midY), float64(width), 1, gridColor)

	// Auto-gain: fast attack, slow release.
	peak := float32(0)
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	target := max(float64(peak), 0.01)
	if target > g.wavePeak {
		g.wavePeak = g.wavePeak*0.3 + target*0.7
	} else {
		g.wavePeak = g.wavePeak*0.995 + target*0.005
	}
	g.wavePeak = max(g.wavePeak, 0.01)
	gain := float64(midY-2) / g.wavePeak

	prevY := midY - int(float64(samples[0])*gain)
	for px := 1; px < width; px++ {
		si := px * len(samples) / width
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(g.scopeImg, float64(px-1), float64(prevY), float64(px), float64(y), waveColor)
		prevY = y
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(g.scopeImg, op)
}

// drawLfoGraph plots the LFO waveform for the current controls. The plot
// runs its own oscillator, so it never disturbs playback.
func (g *game) drawLfoGraph(screen *ebiten.Image, rect image.Rectangle) {
	inner := rect.Inset(8)
	width, height := inner.Dx(), inner.Dy()
	if width < 2 || height < 4 {
		return
	}
	ebitenutil.DrawRect(screen, float64(inner.Min.X), float64(inner.Min.Y), float64(width), float64(height), scopeBgColor)

	gf, gd := g.player.Rack().LfoGraph()
	x0, y0 := float64(inner.Min.X), float64(inner.Max.Y-1)
	h := float64(height - 2)
	var prevX, prevY float64
	for i := 0; i <= graphSteps; i++ {
		x := float32(i) / graphSteps
		xn := float32(i+1) / graphSteps
		v := gf(gd, i == 0, x, xn)
		px := x0 + float64(x)*float64(width-1)
		py := y0 - float64(v)*h
		if i > 0 {
			ebitenutil.DrawLine(screen, prevX, prevY, px, py, graphColor)
		}
		prevX, prevY = px, py
	}
	g.drawText(screen, fmt.Sprintf("LFO  peaks %d", g.peaks), inner.Min.X+4, inner.Min.Y+4)
}

var meterNodes = []modsynth.NodeID{modsynth.NodeNoise, modsynth.NodeLfo, modsynth.NodeAmp, modsynth.NodeReverb}

// drawLeds shows the last output value of every node output as a bar.
func (g *game) drawLeds(screen *ebiten.Image, rect image.Rectangle) {
	x := rect.Min.X + 10
	y := rect.Min.Y + 10
	barW := rect.Dx() - 20 - 150
	for _, id := range meterNodes {
		leds := g.player.Rack().Leds(id)
		for i := range leds {
			v := float64(leds.Get(i))
			label := id.String()
			if len(leds) > 1 {
				label = fmt.Sprintf("%s.%d", id, i)
			}
			g.drawText(screen, label, x, y)
			barX := float64(x + 150)
			ebitenutil.DrawRect(screen, barX, float64(y+4), float64(barW), 16, ledOffColor)
			mag := clamp(abs(v), 0, 1)
			ebitenutil.DrawRect(screen, barX, float64(y+4), mag*float64(barW), 16, ledOnColor)
			y += lineH + 4
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
