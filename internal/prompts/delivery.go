package prompts

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func taskAndID(r *http.Request) (tasks.TaskID, int, error) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, 0, domain.Invalid("invalid prompt id")
	}
	return t, id, nil
}

func readPatch(r *http.Request) (Patch, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, domain.Invalid("failed to read body: %v", err)
	}
	return DecodePatch(body)
}

// GET /api/task/{task}/prompts/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	c, err := h.svc.List(r.Context(), t)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, c)
}

// GET /api/task/{task}/prompts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, id, err := taskAndID(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	p, err := h.svc.Get(r.Context(), t, id)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, p)
}

// POST /api/task/{task}/prompts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	fields, err := readPatch(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	p, err := h.svc.Create(r.Context(), t, fields)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "prompt": p})
}

// PUT /api/task/{task}/prompts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	t, id, err := taskAndID(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	patch, err := readPatch(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	p, err := h.svc.Update(r.Context(), t, id, patch)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "prompt": p})
}

// DELETE /api/task/{task}/prompts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	t, id, err := taskAndID(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), t, id); err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Prompt deleted"})
}

// GET /api/task/{task}/content: старый формат, отдаём документ как есть
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	raw, err := h.svc.LegacyDocument(r.Context(), t)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, json.RawMessage(raw))
}

// POST /api/task/{task}/content
func (h *Handler) SaveContent(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	fields, err := readPatch(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	p, err := h.svc.CreateFromLegacy(r.Context(), t, fields)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Content saved successfully!",
		"prompt":  p,
	})
}

// GET /api/task1/prompts
func (h *Handler) GetStandalone(w http.ResponseWriter, r *http.Request) {
	domain.WriteJSON(w, http.StatusOK, map[string]any{"prompts": h.svc.Standalone(r.Context())})
}

// POST /save_prompts
func (h *Handler) SaveStandalone(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompts string `json:"prompts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		domain.WriteError(w, domain.Invalid("invalid json"))
		return
	}

	if err := h.svc.SaveStandalone(r.Context(), body.Prompts); err != nil {
		domain.WriteJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Prompts saved successfully!"})
}
