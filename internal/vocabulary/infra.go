package vocabulary

import (
	"context"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/infra"
)

type repo struct {
	path string
}

func NewRepo(path string) Repo {
	return &repo{path: path}
}

func (r *repo) Load(ctx context.Context) ([]Card, error) {
	var cards []Card
	if _, err := infra.ReadJSON(r.path, &cards); err != nil {
		return []Card{}, domain.Storage("load vocabulary cards", err)
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}

func (r *repo) Save(ctx context.Context, cards []Card) error {
	if cards == nil {
		cards = []Card{}
	}
	if err := infra.WriteJSON(r.path, cards); err != nil {
		return domain.Storage("save vocabulary cards", err)
	}
	return nil
}
