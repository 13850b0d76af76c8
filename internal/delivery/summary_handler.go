package delivery

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/prompts"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type KeySource interface {
	APIKey(ctx context.Context) string
}

// SummaryHandler отдаёт данные для страниц: ключ и сохранённый контент заданий.
type SummaryHandler struct {
	prompts prompts.Service
	keys    KeySource
}

func NewSummaryHandler(p prompts.Service, keys KeySource) *SummaryHandler {
	return &SummaryHandler{prompts: p, keys: keys}
}

// content: reading первого промпта для 2/3, notes для 4, иначе "".
func (h *SummaryHandler) content(ctx context.Context, t tasks.TaskID) string {
	if t == tasks.Standalone {
		return h.prompts.StandaloneRaw(ctx)
	}
	kind, ok := tasks.KindOf(t)
	if !ok {
		return ""
	}
	p, err := h.prompts.First(ctx, t)
	if err != nil {
		return ""
	}
	return p.Value(kind.Summary)
}

// GET /api/summary
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	domain.WriteJSON(w, http.StatusOK, map[string]string{
		"api_key":       h.keys.APIKey(ctx),
		"task1_content": h.content(ctx, tasks.Standalone),
		"task2_content": h.content(ctx, tasks.Task2),
		"task3_content": h.content(ctx, tasks.Task3),
		"task4_content": h.content(ctx, tasks.Task4),
	})
}

// GET /api/task/{task}/saved
func (h *SummaryHandler) Saved(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "task")

	var (
		t   tasks.TaskID
		err error
	)
	if raw == tasks.Standalone.String() {
		t = tasks.Standalone
	} else if t, err = tasks.Parse(raw); err != nil {
		domain.WriteError(w, err)
		return
	}

	domain.WriteJSON(w, http.StatusOK, map[string]string{
		"api_key": h.keys.APIKey(r.Context()),
		"content": h.content(r.Context(), t),
	})
}
