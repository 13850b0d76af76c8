package prompts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/infra"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type repo struct {
	dataDir string
}

// NewRepo stores collections as <dataDir>/task{n}/prompts.json.
func NewRepo(dataDir string) Repo {
	return &repo{dataDir: dataDir}
}

func (r *repo) path(t tasks.TaskID) string {
	return filepath.Join(r.dataDir, fmt.Sprintf("task%d", t), "prompts.json")
}

// Load: нет файла = пустая коллекция; нечитаемый документ = StorageError.
func (r *repo) Load(ctx context.Context, t tasks.TaskID) (Collection, error) {
	data, err := r.Raw(ctx, t)
	if err != nil {
		return Collection{Prompts: []Prompt{}}, err
	}
	if data == nil {
		return Collection{Prompts: []Prompt{}}, nil
	}

	c, err := decodeCollection(t, data)
	if err != nil {
		return Collection{Prompts: []Prompt{}}, domain.Storage(fmt.Sprintf("load task %d prompts", t), err)
	}
	return c, nil
}

func (r *repo) Save(ctx context.Context, t tasks.TaskID, c Collection) error {
	if c.Prompts == nil {
		c.Prompts = []Prompt{}
	}
	if err := infra.WriteJSON(r.path(t), c); err != nil {
		return domain.Storage(fmt.Sprintf("save task %d prompts", t), err)
	}
	return nil
}

func (r *repo) Raw(ctx context.Context, t tasks.TaskID) ([]byte, error) {
	data, err := os.ReadFile(r.path(t))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Storage(fmt.Sprintf("read task %d prompts", t), err)
	}
	return data, nil
}

// ===== task 1 =====

type textRepo struct {
	path string
}

func NewTextRepo(path string) TextRepo {
	return &textRepo{path: path}
}

func (r *textRepo) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", domain.Storage("load standalone prompts", err)
	}
	return string(data), nil
}

func (r *textRepo) Save(ctx context.Context, text string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return domain.Storage("save standalone prompts", err)
	}
	if err := os.WriteFile(r.path, []byte(text), 0644); err != nil {
		return domain.Storage("save standalone prompts", err)
	}
	return nil
}
