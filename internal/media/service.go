package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
)

type MediaService struct {
	conv     Converter
	notifier error_notificator.Notificator
	timeout  time.Duration
	log      *logger.ZapLogger
}

func NewMediaService(c Converter, notifier error_notificator.Notificator, timeout time.Duration, log *logger.ZapLogger) *MediaService {
	return &MediaService{conv: c, notifier: notifier, timeout: timeout, log: log}
}

// Convert: нет ffmpeg = ошибка клиента (400), сбой запуска = ошибка коллаборатора.
func (s *MediaService) Convert(ctx context.Context, src io.Reader) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.conv.ToMP3(ctx, src)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		_ = s.notifier.Notify(ctx, "ffmpeg", err, "convert to mp3")
		return nil, domain.Collaborator("ffmpeg", err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[media] mp3 %d bytes in %.1fs", len(out), time.Since(start).Seconds()),
		Service: "media",
	})
	return out, nil
}
