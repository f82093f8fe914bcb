package main

import (
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/modsynth-go"
	"github.com/cbegin/modsynth-go/internal/node"
)

const (
	windowW    = 1100
	windowH    = 720
	minWindowW = 980
	minWindowH = 680

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale
)

type game struct {
	player   *modsynth.Player
	events   <-chan modsynth.PlaybackEvent
	tap      *tap
	scopeImg *ebiten.Image
	wavePeak float64

	sliders  []*slider
	dragging int // slider index, -1 for none

	playing bool
	paused  bool
	peaks   int

	status    string
	statusErr bool

	negAtt    node.EnumAtom
	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
}

func newGame(sampleRate int) (*game, error) {
	t := newTap()
	pl, err := modsynth.NewPlayer(sampleRate, modsynth.WithSampleTap(t.Tap))
	if err != nil {
		return nil, err
	}
	g := &game{
		player:    pl,
		events:    pl.Watch(),
		tap:       t,
		dragging:  -1,
		status:    "Ready",
		negAtt:    node.NewAmp().Atoms()[node.AmpNegAtt],
		textCache: make(map[string]*ebiten.Image, 1024),
		viewW:     windowW,
		viewH:     windowH,
	}
	g.sliders = newSliders(pl.Controls())
	return g, nil
}

// newSliders binds one slider per live control, using the specs of the node
// input each control feeds.
func newSliders(c *modsynth.RackControls) []*slider {
	lfoIn := node.NewTsLfo().Inputs()
	plateIn := node.NewPlateReverb().Inputs()
	return []*slider{
		{spec: node.ParamSpec{Name: "vol", Min: 0, Max: 1.5, Curve: node.CurveLinear}, get: c.Volume, set: c.SetVolume},
		{spec: lfoIn[node.TsLfoTime], get: c.LfoTimeMs, set: c.SetLfoTimeMs},
		{spec: lfoIn[node.TsLfoRev], get: c.LfoRev, set: c.SetLfoRev},
		{spec: plateIn[node.PlateDecay], get: c.Decay, set: c.SetDecay},
		{spec: plateIn[node.PlateSize], get: c.Size, set: c.SetSize},
		{spec: plateIn[node.PlatePreDelay], get: c.PreDelayMs, set: c.SetPreDelayMs},
		{spec: plateIn[node.PlateMix], get: c.Mix, set: c.SetMix},
	}
}

type uiLayout struct {
	sliders          []image.Rectangle
	graph, scope     image.Rectangle
	leds             image.Rectangle
	play, neg, reset image.Rectangle
	status           image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w := max(g.viewW, minWindowW)
	h := max(g.viewH, minWindowH)

	pad := 20
	rowH := 44
	statusH := 40
	statusTop := h - pad - statusH
	controlsTop := statusTop - 8 - rowH

	leftW := 460
	sliders := make([]image.Rectangle, len(g.sliders))
	for i := range sliders {
		y := pad + i*(rowH+8)
		sliders[i] = image.Rect(pad, y, pad+leftW, y+rowH)
	}
	ledsTop := pad + len(sliders)*(rowH+8)
	ledsRect := image.Rect(pad, ledsTop, pad+leftW, controlsTop-12)

	rightX := pad + leftW + 12
	rightW := max(w-rightX-pad, 320)
	contentBottom := controlsTop - 12
	graphH := (contentBottom - pad) / 3
	graphRect := image.Rect(rightX, pad, rightX+rightW, pad+graphH)
	scopeRect := image.Rect(rightX, graphRect.Max.Y+12, rightX+rightW, contentBottom)

	return uiLayout{
		sliders: sliders,
		graph:   graphRect,
		scope:   scopeRect,
		leds:    ledsRect,
		play:    image.Rect(pad, controlsTop, pad+130, controlsTop+rowH),
		neg:     image.Rect(pad+142, controlsTop, pad+372, controlsTop+rowH),
		reset:   image.Rect(pad+384, controlsTop, pad+514, controlsTop+rowH),
		status:  image.Rect(pad, statusTop, w-pad, statusTop+statusH),
	}
}

func (g *game) Update() error {
	g.pollEvents()
	g.handleMouse()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePlayPause()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()

	for i, s := range g.sliders {
		g.drawSlider(screen, l.sliders[i], s)
	}
	g.drawSunkenPanel(screen, l.leds)
	g.drawLeds(screen, l.leds)
	g.drawSunkenPanel(screen, l.graph)
	g.drawLfoGraph(screen, l.graph)
	g.drawSunkenPanel(screen, l.scope)
	g.drawScope(screen, l.scope)

	g.drawButton(screen, l.play, g.playButtonLabel())
	g.drawButton(screen, l.neg, "neg_att "+g.negAtt.Format(node.Setting(g.player.Controls().NegAtt())))
	g.drawButton(screen, l.reset, "Reset")

	g.drawSunkenPanel(screen, l.status)
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	g.drawText(screen, shortenEnd(msg, max(8, (l.status.Dx()-16)/charW)), l.status.Min.X+8, l.status.Min.Y+6)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.viewW = max(outsideW, minWindowW)
	g.viewH = max(outsideH, minWindowH)
	return g.viewW, g.viewH
}

func (g *game) Close() { _ = g.player.Stop() }

func (g *game) pollEvents() {
	for {
		select {
		case ev, ok := <-g.events:
			if !ok {
				return
			}
			switch ev.Kind {
			case modsynth.EventPlaybackEnded:
				g.playing = false
				g.paused = false
				if !g.statusErr {
					g.status = "Playback ended"
				}
			case modsynth.EventLfoPeak:
				g.peaks++
			}
		default:
			return
		}
	}
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointInRect(mx, my, l.play):
			g.togglePlayPause()
			return
		case pointInRect(mx, my, l.neg):
			c := g.player.Controls()
			c.SetNegAtt(g.negAtt.Clamp(1 - c.NegAtt()))
			g.setStatus("neg_att: " + g.negAtt.Format(node.Setting(c.NegAtt())))
			return
		case pointInRect(mx, my, l.reset):
			g.player.Controls().RequestReset()
			g.setStatus("Rack reset")
			return
		}
		for i, r := range l.sliders {
			if pointInRect(mx, my, r) {
				g.dragging = i
				break
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = -1
	}
	if g.dragging >= 0 {
		s := g.sliders[g.dragging]
		updateSliderFromMouse(s, mx, l.sliders[g.dragging])
		g.setStatus(s.label())
	}
}

func (g *game) togglePlayPause() {
	if !g.playing {
		if err := g.player.Play(); err != nil {
			g.setError(err.Error())
			return
		}
		g.playing = true
		g.paused = false
		g.setStatus("Playing")
		return
	}
	if g.paused {
		g.player.Resume()
		g.paused = false
		g.setStatus("Playing")
		return
	}
	g.player.Pause()
	g.paused = true
	g.setStatus("Paused")
}

func (g *game) playButtonLabel() string {
	if !g.playing {
		return "Play"
	}
	if g.paused {
		return "Resume"
	}
	return "Pause"
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func main() {
	sampleRate := flag.Int("sample-rate", 48000, "output sample rate")
	flag.Parse()

	g, err := newGame(*sampleRate)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("modsynth-go")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
