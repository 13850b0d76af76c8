package media

import (
	"context"
	"io"
)

type Converter interface {
	// ToMP3 returns the MP3 encoding of src.
	ToMP3(ctx context.Context, src io.Reader) ([]byte, error)
}
