package error_notificator

import "context"

type Notificator interface {
	// Notify: сообщает о сбое внешнего сервиса (stt, tts, gpt, ffmpeg)
	Notify(ctx context.Context, source string, err error, details string) error
}
