package vocabulary

import (
	"context"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

type service struct {
	repo Repo
	mu   sync.Mutex
	log  *logger.ZapLogger
}

func NewService(repo Repo, log *logger.ZapLogger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) load(ctx context.Context) []Card {
	cards, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "vocabulary unreadable, using empty list", Error: err, Service: "vocabulary"})
		return []Card{}
	}
	return cards
}

func (s *service) List(ctx context.Context) []Card {
	return s.load(ctx)
}

func (s *service) Add(ctx context.Context, c Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := append(s.load(ctx), c)
	if err := s.repo.Save(ctx, cards); err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "failed to save vocabulary", Error: err, Service: "vocabulary"})
		return domain.Storage("Failed to save", err)
	}
	return nil
}

// Delete removes by position; later cards shift down by one.
func (s *service) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.load(ctx)
	if index < 0 || index >= len(cards) {
		return domain.Invalid("Invalid index")
	}

	cards = append(cards[:index], cards[index+1:]...)
	if err := s.repo.Save(ctx, cards); err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "failed to save vocabulary", Error: err, Service: "vocabulary"})
		return domain.Storage("Failed to save", err)
	}
	return nil
}
