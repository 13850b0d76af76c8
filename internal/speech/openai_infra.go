package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI Whisper + TTS. Ключ берётся на каждый вызов.
type OpenAIClient struct {
	key KeyFunc
}

func NewOpenAIClient(key KeyFunc) *OpenAIClient {
	return &OpenAIClient{key: key}
}

func (c *OpenAIClient) client(ctx context.Context) (*openai.Client, error) {
	apiKey := c.key(ctx)
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}
	return openai.NewClient(apiKey), nil
}

func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename, language string) ([]Segment, error) {
	cl, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := cl.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return nil, nil
		}
		return []Segment{{Start: 0, Text: resp.Text}}, nil
	}

	out := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		out = append(out, Segment{Start: s.Start, Text: s.Text})
	}
	return out, nil
}

// language не используется: модель определяет язык по тексту.
func (c *OpenAIClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	cl, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := cl.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	return io.ReadAll(resp)
}
