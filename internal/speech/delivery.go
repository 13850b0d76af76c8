package speech

import (
	"encoding/base64"
	"io"
	"net/http"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

type Handler struct {
	svc       *Service
	maxUpload int64
}

func NewHandler(svc *Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// POST /transcribe
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		domain.WriteError(w, domain.Invalid("No audio file provided"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		domain.WriteError(w, domain.Invalid("No audio file provided"))
		return
	}
	defer file.Close()

	// запись из браузера приходит как blob без имени
	name := header.Filename
	if filepath.Ext(name) == "" {
		name = uuid.NewString() + ".webm"
	}

	tr, err := h.svc.Transcribe(r.Context(), file, name, r.FormValue("language"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	domain.WriteJSON(w, http.StatusOK, tr)
}

type createAudioRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// POST /create_audio
func (h *Handler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		domain.WriteError(w, domain.Invalid("invalid body"))
		return
	}

	var req createAudioRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			domain.WriteError(w, domain.Invalid("invalid json"))
			return
		}
	}

	audio, err := h.svc.Synthesize(r.Context(), req.Text, req.Lang)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	domain.WriteJSON(w, http.StatusOK, map[string]string{
		"audio": base64.StdEncoding.EncodeToString(audio),
	})
}
