package speech

import (
	"context"
	"io"
)

// === Интерфейсы ===

type Transcriber interface {
	// Transcribe returns timestamped segments in spoken order.
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) ([]Segment, error)
}

type Synthesizer interface {
	// Synthesize returns MP3 bytes.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// KeyFunc resolves the credential at call time (config.json может поменяться).
type KeyFunc func(ctx context.Context) string

type Segment struct {
	Start float64
	Text  string
}

type Transcript struct {
	Segments  []Segment `json:"-"`
	Formatted string    `json:"transcript"`
	WordCount int       `json:"word_count"`
}
