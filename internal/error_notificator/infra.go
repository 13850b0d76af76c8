package error_notificator

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender: то, что нужно от tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Infra struct {
	bot    Sender
	chatID int64
}

func NewTelegramInfra(token string, chatID int64) (*Infra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return NewInfra(bot, chatID), nil
}

func NewInfra(bot Sender, chatID int64) *Infra {
	return &Infra{bot: bot, chatID: chatID}
}

func (i *Infra) Notify(ctx context.Context, source string, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Ошибка сервиса (%s)\n\nОшибка: %v\n\nДетали: %s",
		source,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, text)); sendErr != nil {
		return fmt.Errorf("telegram send: %w", sendErr)
	}
	return nil
}
