package audio

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects the output library.
type Kind string

const (
	KindEbiten Kind = "ebiten"
	KindOto    Kind = "oto"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindEbiten, KindOto:
		return k, nil
	case "":
		return KindEbiten, nil
	default:
		return "", fmt.Errorf("unknown audio backend %q (want %s or %s)", s, KindEbiten, KindOto)
	}
}

// Backend is a running output stream.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	// Position is the playback position the listener hears.
	Position() time.Duration
	Stop() error
}

// Open creates a paused backend of the given kind that pulls from source.
func Open(kind Kind, sampleRate int, source SampleSource) (Backend, error) {
	switch kind {
	case KindEbiten, "":
		return NewPlayer(sampleRate, source)
	case KindOto:
		return NewOtoPlayer(sampleRate, source)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", kind)
	}
}
