package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cbegin/modsynth-go"
	"github.com/cbegin/modsynth-go/internal/node"
)

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		backendName = flag.String("backend", "ebiten", "audio backend: ebiten|oto")
		blockSize   = flag.Int("block", modsynth.DefaultBlockSize, "frames per processing block")
		seconds     = flag.Float64("seconds", 0, "stop after N seconds (0 = until interrupted; -out defaults to 5)")
		outPath     = flag.String("out", "", "render offline to this WAV file instead of playing")
		live        = flag.Bool("live", false, "control the rack from the keyboard")
		seed        = flag.Uint64("seed", 1, "noise seed")
		lfoMs       = flag.Float64("lfo-ms", 800, "LFO period in ms")
		lfoRev      = flag.Float64("lfo-rev", 0.1, "LFO rise fraction 0..1")
		negAtt      = flag.String("neg-att", "Allow", "amp negative attenuation: Allow|Clip")
		decay       = flag.Float64("decay", 0.5, "reverb decay 0..1")
		size        = flag.Float64("size", 1, "reverb size (tank time scale)")
		preDelay    = flag.Float64("predelay", 0, "reverb pre-delay in ms")
		mix         = flag.Float64("mix", 0.35, "reverb dry/wet mix 0..1")
		volume      = flag.Float64("volume", 0.8, "master volume scalar")
		limiter     = flag.Bool("limiter", false, "limit the master output to -0.3 dB")
	)
	flag.Parse()

	cfg := modsynth.DefaultRackConfig()
	cfg.NoiseSeed = *seed
	cfg.LfoTimeMs = float32(*lfoMs)
	cfg.LfoRev = float32(*lfoRev)
	cfg.Reverb.Decay = float32(*decay)
	cfg.Reverb.TimeScale = float32(*size)
	cfg.Reverb.PreDelayMs = float32(*preDelay)
	cfg.Mix = float32(*mix)
	cfg.Volume = float32(*volume)

	ampAtoms := node.NewAmp().Atoms()
	neg, err := ampAtoms[node.AmpNegAtt].Parse(*negAtt)
	if err != nil {
		log.Fatal(err)
	}
	cfg.NegAtt = neg.Int()

	if *outPath != "" {
		secs := *seconds
		if secs <= 0 {
			secs = 5
		}
		if err := renderWAV(*outPath, cfg, *sampleRate, *blockSize, secs); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%.1fs at %d Hz)\n", *outPath, secs, *sampleRate)
		return
	}

	backend, err := modsynth.ParseBackend(*backendName)
	if err != nil {
		log.Fatal(err)
	}
	opts := []modsynth.PlayerOption{
		modsynth.WithBackend(backend),
		modsynth.WithBlockSize(*blockSize),
		modsynth.WithRackConfig(cfg),
	}
	if *seconds > 0 {
		opts = append(opts, modsynth.WithDuration(time.Duration(*seconds*float64(time.Second))))
	}
	if *limiter {
		opts = append(opts, modsynth.WithLimiter())
	}
	pl, err := modsynth.NewPlayer(*sampleRate, opts...)
	if err != nil {
		log.Fatal(err)
	}
	ch := pl.Watch()
	if err := pl.Play(); err != nil {
		log.Fatal(err)
	}

	if *live {
		if err := runLive(pl); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("playing on %s at %d Hz\n", backend, *sampleRate)
	peaks := 0
	for event := range ch {
		switch event.Kind {
		case modsynth.EventPlaybackEnded:
			fmt.Println("playback completed")
			goto done
		case modsynth.EventLfoPeak:
			peaks++
			if peaks%10 == 0 {
				fmt.Printf("lfo peak %d at frame %d\n", peaks, event.Frame)
			}
		}
	}
done:
	pl.Wait()
}

func renderWAV(path string, cfg modsynth.RackConfig, sampleRate, blockSize int, seconds float64) error {
	samples := modsynth.RenderSamplesBlock(cfg, sampleRate, blockSize, seconds)
	wav := modsynth.EncodeWAVFloat32LE(samples, sampleRate, 2)
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}
