package prompts

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type Repo interface {
	Load(ctx context.Context, t tasks.TaskID) (Collection, error)
	Save(ctx context.Context, t tasks.TaskID, c Collection) error
	Raw(ctx context.Context, t tasks.TaskID) ([]byte, error) // nil, если документа нет
}

// TextRepo: задание 1: один блок текста, читается и пишется целиком.
type TextRepo interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}

type Service interface {
	List(ctx context.Context, t tasks.TaskID) (Collection, error)
	Get(ctx context.Context, t tasks.TaskID, id int) (*Prompt, error)
	First(ctx context.Context, t tasks.TaskID) (*Prompt, error)
	Create(ctx context.Context, t tasks.TaskID, fields Patch) (*Prompt, error)
	Update(ctx context.Context, t tasks.TaskID, id int, patch Patch) (*Prompt, error)
	Delete(ctx context.Context, t tasks.TaskID, id int) error

	LegacyDocument(ctx context.Context, t tasks.TaskID) ([]byte, error)
	CreateFromLegacy(ctx context.Context, t tasks.TaskID, fields Patch) (*Prompt, error)

	Standalone(ctx context.Context) string
	StandaloneRaw(ctx context.Context) string
	SaveStandalone(ctx context.Context, text string) error
}

// Prompt serialises the full field set of its task (null for unset fields).
// Wire format lives in codec.go.
type Prompt struct {
	ID        int
	Reading   *string
	Question  *string
	AudioFile *string
	Notes     *string
	Topic     *string

	task  tasks.TaskID
	extra map[string]json.RawMessage // ключи не нашей формы, пишутся обратно как есть
}

type Collection struct {
	Prompts []Prompt `json:"prompts"`
}
