package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type AiService struct {
	client   Completer
	notifier error_notificator.Notificator
	timeout  time.Duration
	log      *logger.ZapLogger
}

func NewAiService(
	client Completer,
	notifier error_notificator.Notificator,
	timeout time.Duration,
	log *logger.ZapLogger,
) *AiService {
	return &AiService{
		client:   client,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

// === главный метод ===
func (s *AiService) Evaluate(ctx context.Context, req Request) (string, error) {
	if req.Task != tasks.Standalone {
		if _, err := tasks.Validate(req.Task); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(req.APIKey) == "" {
		if req.Task == tasks.Standalone {
			return "", domain.Invalid("No API key provided")
		}
		return "", domain.Invalid("API key is required")
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.client.Complete(ctx, req.APIKey, messages)
	if err != nil {
		_ = s.notifier.Notify(ctx, "openai", err,
			fmt.Sprintf("Ошибка GPT\nЗадание: %d\nМодель: %s\n\n%s", req.Task, model, analyzeOpenAIError(err)))
		return "", domain.Collaborator("openai", err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[ai] evaluate task %d done in %.1fs", req.Task, time.Since(start).Seconds()),
		Service: "ai",
	})

	return CleanFeedback(reply), nil
}
