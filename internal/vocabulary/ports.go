package vocabulary

import "context"

type Repo interface {
	Load(ctx context.Context) ([]Card, error)
	Save(ctx context.Context, cards []Card) error
}

type Service interface {
	List(ctx context.Context) []Card
	Add(ctx context.Context, c Card) error
	Delete(ctx context.Context, index int) error
}

// Card: карточка словаря. Поля nullable: отсутствующий ключ хранится как null.
type Card struct {
	Date     *string `json:"date"`
	Question *string `json:"question"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
}
