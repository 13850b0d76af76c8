package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	model       = openai.GPT4oMini
	temperature = 0.7
	maxTokens   = 1500
)

var errEmptyResponse = errors.New("openai: empty response")

// OpenAIClient создаёт клиента на каждый запрос: ключ приходит от пользователя.
type OpenAIClient struct {
	baseURL string // пусто = api.openai.com
}

func NewOpenAIClient() *OpenAIClient {
	return &OpenAIClient{}
}

func (c *OpenAIClient) Complete(ctx context.Context, apiKey string, messages []openai.ChatCompletionMessage) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}

	resp, err := openai.NewClientWithConfig(cfg).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// диагностика ошибок GPT для уведомлений
func analyzeOpenAIError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Неверный API-ключ OpenAI."
	case strings.Contains(msg, "status code: 404"):
		return "Модель не найдена."
	case strings.Contains(msg, "status code: 429"):
		return "Превышен лимит OpenAI."
	case strings.Contains(msg, "status code: 400"):
		return "Некорректный запрос к OpenAI."
	case strings.Contains(msg, "status code: 500"):
		return "Внутренняя ошибка OpenAI."
	}
	return "Неизвестная ошибка OpenAI: " + err.Error()
}
