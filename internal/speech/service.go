package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt      Transcriber
	tts      Synthesizer
	notifier error_notificator.Notificator
	timeout  time.Duration
	log      *logger.ZapLogger
}

func NewService(
	stt Transcriber,
	tts Synthesizer,
	notifier error_notificator.Notificator,
	timeout time.Duration,
	log *logger.ZapLogger,
) *Service {
	return &Service{
		stt:      stt,
		tts:      tts,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Transcribe blocks until the provider answers or the timeout fires. No retry.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (Transcript, error) {
	if language == "" {
		language = "en"
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	segments, err := s.stt.Transcribe(ctx, audio, filename, language)
	if err != nil {
		_ = s.notifier.Notify(ctx, "stt", err, fmt.Sprintf("transcribe %s", filename))
		return Transcript{}, domain.Collaborator("stt", err)
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[stt] %d segments in %.1fs", len(segments), time.Since(start).Seconds()),
		Service: "speech",
	})
	return BuildTranscript(segments), nil
}

func (s *Service) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Invalid("No text provided")
	}
	if language == "" {
		language = "en"
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	audio, err := s.tts.Synthesize(ctx, text, language)
	if err != nil {
		_ = s.notifier.Notify(ctx, "tts", err, fmt.Sprintf("synthesize %d chars", len(text)))
		return nil, domain.Collaborator("tts", err)
	}
	return audio, nil
}

// BuildTranscript formats one "[12.3s] text" line per segment and counts words.
func BuildTranscript(segments []Segment) Transcript {
	var (
		b     strings.Builder
		words int
	)
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		words += len(strings.Fields(text))
		fmt.Fprintf(&b, "[%.1fs] %s\n", seg.Start, text)
	}

	return Transcript{
		Segments:  segments,
		Formatted: b.String(),
		WordCount: words,
	}
}
