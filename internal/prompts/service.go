package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type service struct {
	repo  Repo
	text  TextRepo
	locks *tasks.Locks
	log   *logger.ZapLogger
}

func NewService(repo Repo, text TextRepo, log *logger.ZapLogger) Service {
	return &service{
		repo:  repo,
		text:  text,
		locks: tasks.NewLocks(),
		log:   log,
	}
}

// load never fails: broken or unreadable documents degrade to an empty collection.
func (s *service) load(ctx context.Context, t tasks.TaskID) Collection {
	c, err := s.repo.Load(ctx, t)
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "prompts document unreadable, using empty collection",
			Error:   err,
			Service: "prompts",
		})
		return Collection{Prompts: []Prompt{}}
	}
	return c
}

// loadForWrite does not degrade: an unreadable document is never overwritten.
func (s *service) loadForWrite(ctx context.Context, t tasks.TaskID) (Collection, error) {
	c, err := s.repo.Load(ctx, t)
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "prompts document unreadable, refusing to overwrite",
			Error:   err,
			Service: "prompts",
		})
		return Collection{}, err
	}
	return c, nil
}

func (s *service) save(ctx context.Context, t tasks.TaskID, c Collection) error {
	if err := s.repo.Save(ctx, t, c); err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "failed to save prompts",
			Error:   err,
			Service: "prompts",
		})
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, t tasks.TaskID) (Collection, error) {
	if _, err := tasks.Validate(t); err != nil {
		return Collection{}, err
	}
	return s.load(ctx, t), nil
}

func (s *service) Get(ctx context.Context, t tasks.TaskID, id int) (*Prompt, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}

	c := s.load(ctx, t)
	for i := range c.Prompts {
		if c.Prompts[i].ID == id {
			p := c.Prompts[i]
			return &p, nil
		}
	}
	return nil, domain.NotFound("Prompt not found")
}

func (s *service) First(ctx context.Context, t tasks.TaskID) (*Prompt, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}

	c := s.load(ctx, t)
	if len(c.Prompts) == 0 {
		return nil, domain.NotFound("No content saved for this task")
	}
	p := c.Prompts[0]
	return &p, nil
}

func nextID(c Collection) int {
	highest := 0
	for _, p := range c.Prompts {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// build keeps only the task's fields; text fields default to "", audio_file to null.
func build(kind tasks.Kind, id int, fields Patch) Prompt {
	p := Prompt{ID: id, task: kind.Task}
	for _, f := range kind.Fields {
		dst := p.field(f)
		v := fields[f]
		if f == tasks.FieldAudioFile {
			*dst = v
			continue
		}
		if v == nil {
			*dst = strPtr("")
			continue
		}
		*dst = strPtr(*v)
	}
	return p
}

func (s *service) Create(ctx context.Context, t tasks.TaskID, fields Patch) (*Prompt, error) {
	kind, ok := tasks.KindOf(t)
	if !ok {
		return nil, domain.Invalid("Invalid task number")
	}

	unlock := s.locks.Lock(t)
	defer unlock()

	c, err := s.loadForWrite(ctx, t)
	if err != nil {
		return nil, domain.Storage("Failed to save prompt", err)
	}
	p := build(kind, nextID(c), fields)
	c.Prompts = append(c.Prompts, p)

	if err := s.save(ctx, t, c); err != nil {
		return nil, domain.Storage("Failed to save prompt", err)
	}
	return &p, nil
}

func (s *service) Update(ctx context.Context, t tasks.TaskID, id int, patch Patch) (*Prompt, error) {
	kind, ok := tasks.KindOf(t)
	if !ok {
		return nil, domain.Invalid("Invalid task number")
	}

	unlock := s.locks.Lock(t)
	defer unlock()

	c, err := s.loadForWrite(ctx, t)
	if err != nil {
		return nil, domain.Storage("Failed to save prompt", err)
	}
	for i := range c.Prompts {
		if c.Prompts[i].ID != id {
			continue
		}

		p := &c.Prompts[i]
		for _, f := range kind.Fields {
			if !patch.Has(f) {
				continue
			}
			v := patch[f]
			if v != nil {
				v = strPtr(*v)
			}
			p.setField(f, v)
		}

		if err := s.save(ctx, t, c); err != nil {
			return nil, domain.Storage("Failed to save prompt", err)
		}
		out := *p
		return &out, nil
	}

	return nil, domain.NotFound("Prompt not found")
}

func (s *service) Delete(ctx context.Context, t tasks.TaskID, id int) error {
	if _, err := tasks.Validate(t); err != nil {
		return err
	}

	unlock := s.locks.Lock(t)
	defer unlock()

	c, err := s.loadForWrite(ctx, t)
	if err != nil {
		return domain.Storage("Failed to delete prompt", err)
	}
	kept := make([]Prompt, 0, len(c.Prompts))
	for _, p := range c.Prompts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.Prompts = kept

	if err := s.save(ctx, t, c); err != nil {
		return domain.Storage("Failed to delete prompt", err)
	}
	return nil
}

// ===== legacy /content =====

func (s *service) LegacyDocument(ctx context.Context, t tasks.TaskID) ([]byte, error) {
	if _, err := tasks.Validate(t); err != nil {
		return nil, err
	}

	raw, err := s.repo.Raw(ctx, t)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []byte("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, domain.Storage(fmt.Sprintf("load task %d prompts", t), errors.New("malformed document"))
	}
	return raw, nil
}

// CreateFromLegacy keeps the old single-field save: reading for 2/3, notes for 4.
func (s *service) CreateFromLegacy(ctx context.Context, t tasks.TaskID, fields Patch) (*Prompt, error) {
	kind, ok := tasks.KindOf(t)
	if !ok {
		return nil, domain.Invalid("Invalid task number")
	}

	only := Patch{}
	if v, ok := fields[kind.Summary]; ok {
		only[kind.Summary] = v
	}
	return s.Create(ctx, t, only)
}

// ===== task 1 =====

// Standalone is the task 1 text without surrounding whitespace.
func (s *service) Standalone(ctx context.Context) string {
	return strings.TrimSpace(s.StandaloneRaw(ctx))
}

// StandaloneRaw is the file content as saved.
func (s *service) StandaloneRaw(ctx context.Context) string {
	text, err := s.text.Load(ctx)
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "standalone prompts unreadable",
			Error:   err,
			Service: "prompts",
		})
		return ""
	}
	return text
}

func (s *service) SaveStandalone(ctx context.Context, text string) error {
	return s.text.Save(ctx, text)
}
