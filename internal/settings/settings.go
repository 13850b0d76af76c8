package settings

import (
	"context"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/infra"
)

const KeyAPIKey = "api_key"

// Store: плоский config.json. Частичное обновление всегда read-modify-write всего документа.
type Store struct {
	path string
	mu   sync.Mutex
	log  *logger.ZapLogger
}

func NewStore(path string, log *logger.ZapLogger) *Store {
	return &Store{path: path, log: log}
}

func (s *Store) Load(ctx context.Context) map[string]any {
	doc := map[string]any{}
	if _, err := infra.ReadJSON(s.path, &doc); err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "config unreadable, using defaults", Error: err, Service: "settings"})
		return map[string]any{}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc
}

// Merge writes patch over the stored document, keeping unrelated keys.
func (s *Store) Merge(ctx context.Context, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Load(ctx)
	for k, v := range patch {
		doc[k] = v
	}

	if err := infra.WriteJSON(s.path, doc); err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "failed to save config", Error: err, Service: "settings"})
		return domain.Storage("Failed to save config", err)
	}
	return nil
}

func (s *Store) APIKey(ctx context.Context) string {
	v, _ := s.Load(ctx)[KeyAPIKey].(string)
	return v
}
