package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type Completer interface {
	// Complete runs one chat completion with the caller's key.
	Complete(ctx context.Context, apiKey string, messages []openai.ChatCompletionMessage) (string, error)
}

type Service interface {
	// Evaluate returns cleaned HTML feedback for one spoken response.
	Evaluate(ctx context.Context, req Request) (string, error)
}

// Request: всё, что нужно для оценки одного ответа.
type Request struct {
	Task         tasks.TaskID
	Question     string
	Transcript   string
	ReadingText  string
	WordCount    int
	SpeakingTime float64
	HasAudio     bool
	APIKey       string
}

// WPM is zero when the speaking time is unknown.
func (r Request) WPM() float64 {
	if r.SpeakingTime <= 0 {
		return 0
	}
	return float64(r.WordCount) / r.SpeakingTime * 60
}
