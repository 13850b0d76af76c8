package audio

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/Vovarama1992/toefl_trainer/internal/prompts"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type Repo interface {
	Dir(t tasks.TaskID) string
	Names(ctx context.Context, t tasks.TaskID) (map[string]struct{}, error)
	// Create fails with fs.ErrExist instead of overwriting.
	Create(ctx context.Context, t tasks.TaskID, name string, r io.Reader) (int64, error)
	List(ctx context.Context, t tasks.TaskID) ([]Asset, error)
	Open(ctx context.Context, t tasks.TaskID, name string) (*Blob, error)
}

type Service interface {
	Store(ctx context.Context, t tasks.TaskID, filename string, r io.Reader) (string, error)
	List(ctx context.Context, t tasks.TaskID) ([]Asset, error)
	Fetch(ctx context.Context, t tasks.TaskID, filename string) (*Blob, error)
	PromptAudio(ctx context.Context, t tasks.TaskID) (*Blob, error)
}

// PromptLister: то, что нужно от хранилища промптов для legacy-роута.
type PromptLister interface {
	List(ctx context.Context, t tasks.TaskID) (prompts.Collection, error)
}

type Asset struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	SizeHuman string `json:"size_human"`
}

// Blob: открытый файл; закрывает вызывающий.
type Blob struct {
	*os.File
	Name    string
	Size    int64
	ModTime time.Time
}
