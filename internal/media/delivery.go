package media

import (
	"encoding/base64"
	"net/http"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

type Handler struct {
	svc       *MediaService
	maxUpload int64
}

func NewHandler(svc *MediaService, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// POST /convert_to_mp3
func (h *Handler) ConvertToMP3(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		domain.WriteError(w, domain.Invalid("No audio file provided"))
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		domain.WriteError(w, domain.Invalid("No audio file provided"))
		return
	}
	defer file.Close()

	mp3, err := h.svc.Convert(r.Context(), file)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	domain.WriteJSON(w, http.StatusOK, map[string]string{
		"mp3": base64.StdEncoding.EncodeToString(mp3),
	})
}
