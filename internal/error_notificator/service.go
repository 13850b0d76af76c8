package error_notificator

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

// Service всегда пишет в лог; infra (telegram) опциональна.
type Service struct {
	infra Notificator
	log   *logger.ZapLogger
}

func NewService(infra Notificator, log *logger.ZapLogger) *Service {
	return &Service{infra: infra, log: log}
}

func (s *Service) Notify(ctx context.Context, source string, err error, details string) error {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: source + ": " + details,
		Error:   err,
		Service: "error_notificator",
	})

	if s.infra == nil {
		return nil
	}

	if nerr := s.infra.Notify(ctx, source, err, details); nerr != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "notify failed", Error: nerr, Service: "error_notificator"})
		return nerr
	}
	return nil
}
