package audio

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
	"github.com/Vovarama1992/toefl_trainer/internal/tasks"
)

type Handler struct {
	svc       Service
	maxUpload int64
}

func NewHandler(svc Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// POST /api/task/{task}/upload_audio
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		domain.WriteError(w, domain.Invalid("invalid multipart: %v", err))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		domain.WriteError(w, domain.Invalid("No audio file provided"))
		return
	}
	defer file.Close()

	name, err := h.svc.Store(r.Context(), t, header.Filename, file)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	domain.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Audio uploaded successfully!",
		"filename": name,
	})
}

// GET /api/task/{task}/audio/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	items, err := h.svc.List(r.Context(), t)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]any{"audio_files": items})
}

// GET /api/task/{task}/audio/{filename}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	blob, err := h.svc.Fetch(r.Context(), t, chi.URLParam(r, "filename"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	defer blob.Close()

	serveBlob(w, r, blob)
}

// GET /api/task/{task}/audio: аудио первого промпта с audio_file
func (h *Handler) ServePromptAudio(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	blob, err := h.svc.PromptAudio(r.Context(), t)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	defer blob.Close()

	serveBlob(w, r, blob)
}

func serveBlob(w http.ResponseWriter, r *http.Request, b *Blob) {
	w.Header().Set("Content-Type", contentType(b.Name))
	http.ServeContent(w, r, b.Name, b.ModTime, b.File)
}
