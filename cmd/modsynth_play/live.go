package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/cbegin/modsynth-go"
	"github.com/cbegin/modsynth-go/internal/node"
)

const liveHelp = "keys: space pause  +/- volume  [/] lfo time  ,/. lfo shape  d/D decay  s/S size  m/M mix  c neg_att  r reset  q quit"

// runLive puts the terminal into raw mode and maps single key presses to
// rack controls until q, Ctrl-C or the end of playback.
func runLive(pl *modsynth.Player) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("-live needs an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	// Raw mode disables output post-processing, so every line needs \r\n.
	fmt.Print(liveHelp + "\r\n")

	keys := make(chan byte)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n > 0 {
				keys <- buf[0]
			}
		}
	}()

	events := pl.Watch()
	c := pl.Controls()
	paused := false
	for {
		select {
		case ev := <-events:
			if ev.Kind == modsynth.EventPlaybackEnded {
				fmt.Print("playback completed\r\n")
				return nil
			}
		case k, ok := <-keys:
			if !ok {
				return pl.Stop()
			}
			switch k {
			case 'q', 3: // 3 is Ctrl-C in raw mode
				return pl.Stop()
			case ' ':
				if paused {
					pl.Resume()
				} else {
					pl.Pause()
				}
				paused = !paused
			case '+', '=':
				c.SetVolume(c.Volume() + 0.05)
			case '-':
				c.SetVolume(c.Volume() - 0.05)
			case ']':
				c.SetLfoTimeMs(c.LfoTimeMs() * 1.25)
			case '[':
				c.SetLfoTimeMs(c.LfoTimeMs() / 1.25)
			case '.':
				c.SetLfoRev(c.LfoRev() + 0.05)
			case ',':
				c.SetLfoRev(c.LfoRev() - 0.05)
			case 'D':
				c.SetDecay(c.Decay() + 0.05)
			case 'd':
				c.SetDecay(c.Decay() - 0.05)
			case 'S':
				c.SetSize(c.Size() * 1.1)
			case 's':
				c.SetSize(c.Size() / 1.1)
			case 'M':
				c.SetMix(c.Mix() + 0.05)
			case 'm':
				c.SetMix(c.Mix() - 0.05)
			case 'c':
				c.SetNegAtt(1 - c.NegAtt())
			case 'r':
				c.RequestReset()
			default:
				continue
			}
			printStatus(c)
		}
	}
}

func printStatus(c *modsynth.RackControls) {
	negAtt := node.NewAmp().Atoms()[node.AmpNegAtt]
	fmt.Printf("vol %.2f  lfo %.0fms rev %.2f  decay %.2f  size %.2f  mix %.2f  neg_att %s\r\n",
		c.Volume(), c.LfoTimeMs(), c.LfoRev(), c.Decay(), c.Size(), c.Mix(),
		negAtt.Format(node.Setting(c.NegAtt())))
}
