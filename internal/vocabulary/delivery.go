package vocabulary

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /api/vocabulary_cards
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	domain.WriteJSON(w, http.StatusOK, map[string]any{"cards": h.svc.List(r.Context())})
}

// POST /api/vocabulary_cards
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var c Card
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		domain.WriteError(w, domain.Invalid("invalid json"))
		return
	}

	if err := h.svc.Add(r.Context(), c); err != nil {
		domain.WriteJSON(w, domain.StatusOf(err), map[string]any{"success": false, "error": err.Error()})
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Vocabulary card saved!"})
}

// DELETE /api/vocabulary_cards/{index}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		domain.WriteError(w, domain.Invalid("Invalid index"))
		return
	}

	if err := h.svc.Delete(r.Context(), index); err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Card deleted!"})
}
