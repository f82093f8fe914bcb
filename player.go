package modsynth

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	intaudio "github.com/cbegin/modsynth-go/internal/audio"
	intfx "github.com/cbegin/modsynth-go/internal/effects"
)

// PlaybackEvent carries playback events from Watch().
type PlaybackEvent struct {
	Kind  int // EventLfoPeak or EventPlaybackEnded
	Frame int64
}

const (
	EventLfoPeak int = iota
	EventPlaybackEnded
)

// Backend names an audio output library.
type Backend string

const (
	BackendEbiten Backend = Backend(intaudio.KindEbiten)
	BackendOto    Backend = Backend(intaudio.KindOto)
)

func ParseBackend(s string) (Backend, error) {
	k, err := intaudio.ParseKind(s)
	if err != nil {
		return "", err
	}
	return Backend(k), nil
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	blockSize int
	backend   Backend
	rack      RackConfig
	duration  time.Duration
	sampleTap func([]float32)
	limiter   bool
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{
		blockSize: DefaultBlockSize,
		backend:   BackendEbiten,
		rack:      DefaultRackConfig(),
	}
}

// WithBlockSize sets how many frames the rack renders per block.
func WithBlockSize(frames int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.blockSize = frames
	}
}

func WithBackend(b Backend) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = b
	}
}

func WithRackConfig(rc RackConfig) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.rack = rc
	}
}

// WithDuration ends playback after d. Zero plays until Stop.
func WithDuration(d time.Duration) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.duration = d
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// WithLimiter places a peak limiter with a -0.3 dB ceiling after the
// master EQ.
func WithLimiter() PlayerOption {
	return func(cfg *playerConfig) {
		cfg.limiter = true
	}
}

// Player streams a Rack to an audio device.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	cfg        playerConfig
	rack       *Rack
	masterEQ   *intfx.EQ5Band
	source     *rackSource
	audio      intaudio.Backend
	done       chan struct{}
	eventCh    chan PlaybackEvent
	eventChMu  sync.Mutex
}

// rackSource feeds the audio backend and reports the end of a timed
// playback.
type rackSource struct {
	rack      *Rack
	master    *intfx.Chain
	sampleTap func([]float32)
	limit     int64 // frames, 0 for unlimited
	frames    atomic.Int64
	finished  atomic.Bool
	onFinish  func()
}

func (s *rackSource) Process(dst []float32) {
	if s.finished.Load() {
		clear(dst)
		return
	}
	s.rack.Process(dst)
	if s.master != nil {
		s.master.ProcessInterleaved(dst)
	}
	if s.sampleTap != nil {
		s.sampleTap(dst)
	}
	n := s.frames.Add(int64(len(dst) / 2))
	if s.limit > 0 && n >= s.limit && !s.finished.Swap(true) && s.onFinish != nil {
		s.onFinish()
	}
}

func (s *rackSource) Finished() bool {
	return s.finished.Load()
}

func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.blockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %d", cfg.blockSize)
	}
	if _, err := intaudio.ParseKind(string(cfg.backend)); err != nil {
		return nil, err
	}
	InitTables()

	p := &Player{
		sampleRate: sampleRate,
		cfg:        cfg,
		rack:       NewRack(sampleRate, cfg.blockSize, cfg.rack),
		masterEQ:   intfx.NewEQ5Band(sampleRate),
	}
	stages := []intfx.Effector{p.masterEQ}
	if cfg.limiter {
		stages = append(stages, intfx.NewLimiter(sampleRate, -0.3, 0.5, 80))
	}
	p.source = &rackSource{
		rack:      p.rack,
		master:    intfx.NewChain(stages...),
		sampleTap: cfg.sampleTap,
		limit:     int64(cfg.duration.Seconds() * float64(sampleRate)),
	}
	p.source.onFinish = func() {
		p.sendEvent(PlaybackEvent{Kind: EventPlaybackEnded, Frame: p.source.frames.Load()})
		p.signalDone()
	}
	p.rack.OnLfoPeak(func() {
		p.sendEvent(PlaybackEvent{Kind: EventLfoPeak, Frame: p.source.frames.Load()})
	})
	return p, nil
}

// Play opens the audio backend and starts streaming. Calling Play while
// playing is a no-op.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.audio != nil {
		p.audio.Play()
		return nil
	}
	if p.source.Finished() {
		return errors.New("playback already finished")
	}
	backend, err := intaudio.Open(intaudio.Kind(p.cfg.backend), p.sampleRate, p.source)
	if err != nil {
		return err
	}
	p.done = make(chan struct{})
	p.audio = backend
	p.audio.Play()
	return nil
}

func (p *Player) sendEvent(ev PlaybackEvent) {
	p.eventChMu.Lock()
	ch := p.eventCh
	p.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}

func (p *Player) signalDone() {
	p.mu.Lock()
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	done := p.done
	p.done = nil
	p.mu.Unlock()
	p.sendEvent(PlaybackEvent{Kind: EventPlaybackEnded, Frame: p.source.frames.Load()})
	if done != nil {
		close(done)
	}
	return err
}

// Wait blocks until the current playback ends, either by Stop or because the
// duration set with WithDuration elapsed. It returns immediately if nothing
// is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Watch returns a channel that receives playback events. Events are sent when:
//   - EventLfoPeak: the LFO reached the top of its swing
//   - EventPlaybackEnded: playback was stopped or its duration elapsed
//
// The channel is buffered (cap 8); events are dropped while it is full.
// Only the most recent Watch() channel receives events.
func (p *Player) Watch() <-chan PlaybackEvent {
	ch := make(chan PlaybackEvent, 8)
	p.eventChMu.Lock()
	p.eventCh = ch
	p.eventChMu.Unlock()
	return ch
}

// Controls returns the live settings of the rack.
func (p *Player) Controls() *RackControls {
	return p.rack.Controls()
}

func (p *Player) Rack() *Rack { return p.rack }

func (p *Player) SampleRate() int { return p.sampleRate }

// SetMasterVolume sets runtime volume scalar. Negative values clamp to 0.
func (p *Player) SetMasterVolume(volume float64) {
	p.rack.Controls().SetVolume(float32(volume))
}

func (p *Player) MasterVolume() float64 {
	return float64(p.rack.Controls().Volume())
}

// SetEQBand sets the gain for a master EQ band (0-4). 1.0 = unity.
// Band edges are 200, 800, 2500 and 8000 Hz.
// Safe to call during playback.
func (p *Player) SetEQBand(band int, gain float32) {
	p.masterEQ.SetGain(band, gain)
}

// EQBand returns the current gain for a master EQ band (0-4).
func (p *Player) EQBand(band int) float32 {
	return p.masterEQ.Gain(band)
}

// SetEQBypass skips the master EQ without losing its band gains.
func (p *Player) SetEQBypass(on bool) {
	p.source.master.SetBypass(0, on)
}

// RenderedFrames returns how many frames the rack produced so far.
func (p *Player) RenderedFrames() int64 {
	return p.source.frames.Load()
}

// PlaybackPosition returns the current output position of the audio driver,
// i.e. what the listener actually hears right now. Returns 0 if not playing.
func (p *Player) PlaybackPosition() int64 {
	p.mu.Lock()
	a := p.audio
	p.mu.Unlock()
	if a == nil {
		return 0
	}
	pos := a.Position()
	return int64(pos.Seconds() * float64(p.sampleRate))
}
