package audio

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/ports"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type service struct {
	repo    Repo
	prompts PromptLister
	mirror  ports.S3Client // может быть nil
	locks   *tasks.Locks
	log     *logger.ZapLogger
}

func NewService(repo Repo, prompts PromptLister, mirror ports.S3Client, log *logger.ZapLogger) Service {
	return &service{
		repo:    repo,
		prompts: prompts,
		mirror:  mirror,
		locks:   tasks.NewLocks(),
		log:     log,
	}
}

// Store never overwrites: a taken name gets a _N suffix before the extension.
func (s *service) Store(ctx context.Context, t tasks.TaskID, filename string, r io.Reader) (string, error) {
	if _, err := tasks.Validate(t); err != nil {
		return "", err
	}
	if filename == "" {
		return "", domain.Invalid("No file selected")
	}
	base := cleanName(filename)
	if base == "" {
		return "", domain.Invalid("invalid filename")
	}

	unlock := s.locks.Lock(t)
	defer unlock()

	names, err := s.repo.Names(ctx, t)
	if err != nil {
		return "", err
	}

	for {
		name := NextAvailableName(names, base)
		_, err := s.repo.Create(ctx, t, name, r)
		if errors.Is(err, fs.ErrExist) {
			// появился снаружи процесса между листингом и записью
			names[name] = struct{}{}
			continue
		}
		if err != nil {
			s.log.Log(logger.LogEntry{Level: "error", Message: "failed to store audio", Error: err, Service: "audio"})
			return "", err
		}

		s.mirrorAsset(ctx, t, name)
		return name, nil
	}
}

func (s *service) mirrorAsset(ctx context.Context, t tasks.TaskID, name string) {
	if s.mirror == nil {
		return
	}

	f, err := os.Open(filepath.Join(s.repo.Dir(t), name))
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "mirror: reopen failed", Error: err, Service: "audio"})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "mirror: stat failed", Error: err, Service: "audio"})
		return
	}

	key := "task" + t.String() + "/" + name
	url, err := s.mirror.PutObject(ctx, key, f, info.Size(), contentType(name))
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "mirror upload failed: " + key, Error: err, Service: "audio"})
		return
	}
	s.log.Log(logger.LogEntry{Level: "info", Message: "mirrored " + key + " to " + url, Service: "audio"})
}

func (s *service) List(ctx context.Context, t tasks.TaskID) ([]Asset, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, t)
}

func (s *service) Fetch(ctx context.Context, t tasks.TaskID, filename string) (*Blob, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}
	if !safeName(filename) {
		return nil, domain.Invalid("invalid filename")
	}
	return s.repo.Open(ctx, t, filename)
}

// PromptAudio serves the audio_file of the first prompt that has one.
func (s *service) PromptAudio(ctx context.Context, t tasks.TaskID) (*Blob, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}

	c, err := s.prompts.List(ctx, t)
	if err != nil {
		return nil, err
	}
	if len(c.Prompts) == 0 {
		return nil, domain.NotFound("No content saved for this task")
	}

	for _, p := range c.Prompts {
		if p.AudioFile != nil && *p.AudioFile != "" {
			return s.Fetch(ctx, t, *p.AudioFile)
		}
	}
	return nil, domain.NotFound("No audio file saved")
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
