package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	otoContextOnce sync.Once
	otoContext     *oto.Context
	otoContextErr  error
	otoSampleRate  int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoContextOnce.Do(func() {
		otoSampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContextErr = fmt.Errorf("oto: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoContextErr != nil {
		return nil, otoContextErr
	}
	if otoSampleRate != sampleRate {
		return nil, fmt.Errorf("oto context already initialized at %d Hz (requested %d Hz)", otoSampleRate, sampleRate)
	}
	return otoContext, nil
}

// OtoPlayer plays directly through oto without an ebiten game loop.
type OtoPlayer struct {
	mu         sync.Mutex
	player     *oto.Player
	reader     *StreamReader
	sampleRate int
}

func NewOtoPlayer(sampleRate int, source SampleSource) (*OtoPlayer, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	return &OtoPlayer{
		player:     ctx.NewPlayer(reader),
		reader:     reader,
		sampleRate: sampleRate,
	}, nil
}

func (op *OtoPlayer) Play() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player != nil {
		op.player.Play()
	}
}

func (op *OtoPlayer) Pause() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player != nil {
		op.player.Pause()
	}
}

func (op *OtoPlayer) IsPlaying() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.player != nil && op.player.IsPlaying()
}

// Position estimates the audible position from the rendered frames minus
// what oto still holds in its buffer.
func (op *OtoPlayer) Position() time.Duration {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player == nil {
		return 0
	}
	frames := op.reader.Frames() - int64(op.player.BufferedSize()/bytesPerFrame)
	if frames < 0 {
		frames = 0
	}
	return time.Duration(frames) * time.Second / time.Duration(op.sampleRate)
}

func (op *OtoPlayer) Stop() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player == nil {
		return nil
	}
	op.player.Pause()
	op.player.Close()
	op.player = nil
	return op.reader.Close()
}
