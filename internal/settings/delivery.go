package settings

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// POST /save_config
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var body struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		domain.WriteError(w, domain.Invalid("invalid json"))
		return
	}

	if err := h.store.Merge(r.Context(), map[string]any{KeyAPIKey: body.APIKey}); err != nil {
		domain.WriteJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to save config"})
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Config saved successfully!"})
}
