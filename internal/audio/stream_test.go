package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

type rampSource struct {
	next     float32
	finishAt int
	calls    int
}

func (s *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = s.next
		s.next += 0.25
	}
	s.calls++
}

func (s *rampSource) Finished() bool { return s.finishAt > 0 && s.calls >= s.finishAt }

func TestStreamReaderEncodesFrames(t *testing.T) {
	src := &rampSource{}
	r := NewStreamReader(src)
	p := make([]byte, 8*3+5) // trailing partial frame is left alone
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 24 {
		t.Fatalf("n = %d, want 24", n)
	}
	for i := 0; i < 6; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if want := float32(i) * 0.25; got != want {
			t.Fatalf("sample %d = %f, want %f", i, got, want)
		}
	}
	if r.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", r.Frames())
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	n, err := r.Read(make([]byte, 7))
	if n != 0 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

func TestStreamReaderEOF(t *testing.T) {
	r := NewStreamReader(&rampSource{finishAt: 2})
	p := make([]byte, 64)
	if _, err := r.Read(p); err != nil {
		t.Fatalf("first read: %v", err)
	}
	n, err := r.Read(p)
	if err != io.EOF {
		t.Fatalf("second read err = %v, want EOF", err)
	}
	if n != 64 {
		t.Fatalf("final read returned %d bytes, want 64", n)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindEbiten, false},
		{"ebiten", KindEbiten, false},
		{" OTO ", KindOto, false},
		{"alsa", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseKind(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
