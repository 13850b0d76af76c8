package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type diskRepo struct {
	dataDir string
}

// NewDiskRepo keeps assets under <dataDir>/task{n}/audio/.
func NewDiskRepo(dataDir string) Repo {
	return &diskRepo{dataDir: dataDir}
}

func (r *diskRepo) Dir(t tasks.TaskID) string {
	return filepath.Join(r.dataDir, fmt.Sprintf("task%d", t), "audio")
}

func (r *diskRepo) Names(ctx context.Context, t tasks.TaskID) (map[string]struct{}, error) {
	entries, err := os.ReadDir(r.Dir(t))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]struct{}{}, nil
		}
		return nil, domain.Storage("read audio dir", err)
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

func (r *diskRepo) Create(ctx context.Context, t tasks.TaskID, name string, src io.Reader) (int64, error) {
	dir := r.Dir(t)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, domain.Storage("create audio dir", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, err
		}
		return 0, domain.Storage("create audio file", err)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, domain.Storage("write audio file", err)
	}
	return n, nil
}

func (r *diskRepo) List(ctx context.Context, t tasks.TaskID) ([]Asset, error) {
	entries, err := os.ReadDir(r.Dir(t))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Asset{}, nil
		}
		return nil, domain.Storage("read audio dir", err)
	}

	out := make([]Asset, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !isAudio(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // файл удалили между ReadDir и Info
		}
		out = append(out, Asset{
			Filename:  e.Name(),
			Size:      info.Size(),
			SizeHuman: humanize.Bytes(uint64(info.Size())),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

func (r *diskRepo) Open(ctx context.Context, t tasks.TaskID, name string) (*Blob, error) {
	dir := r.Dir(t)
	path := filepath.Join(dir, name)

	rel, err := filepath.Rel(dir, path)
	if err != nil || rel != name || strings.HasPrefix(rel, "..") {
		return nil, domain.Invalid("invalid filename")
	}

	// ссылки не раздаём: они могут вести за пределы каталога задания
	lst, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFound("Audio file not found")
		}
		return nil, domain.Storage("stat audio file", err)
	}
	if !lst.Mode().IsRegular() {
		return nil, domain.NotFound("Audio file not found")
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFound("Audio file not found")
		}
		return nil, domain.Storage("open audio file", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, domain.Storage("stat audio file", err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, domain.NotFound("Audio file not found")
	}

	return &Blob{File: f, Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}
