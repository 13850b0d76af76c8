package ai

import (
	"io"
	"net/http"

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

type evaluateRequest struct {
	APIKey       string   `json:"api_key"`
	Question     string   `json:"question"`
	Transcript   string   `json:"transcript"`
	ReadingText  string   `json:"reading_text"`
	WordCount    int      `json:"word_count"`
	SpeakingTime *float64 `json:"speaking_time"`
	HasAudio     bool     `json:"has_audio"`
}

func decode(r *http.Request) (evaluateRequest, error) {
	var req evaluateRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, domain.Invalid("invalid body")
	}
	if len(body) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, domain.Invalid("invalid json")
	}
	return req, nil
}

func (e evaluateRequest) toRequest(t tasks.TaskID, defaultTime float64) Request {
	speaking := defaultTime
	if e.SpeakingTime != nil {
		speaking = *e.SpeakingTime
	}
	return Request{
		Task:         t,
		Question:     e.Question,
		Transcript:   e.Transcript,
		ReadingText:  e.ReadingText,
		WordCount:    e.WordCount,
		SpeakingTime: speaking,
		HasAudio:     e.HasAudio,
		APIKey:       e.APIKey,
	}
}

// POST /evaluate (task 1, время ответа по умолчанию 45с)
func (h *Handler) EvaluateStandalone(w http.ResponseWriter, r *http.Request) {
	body, err := decode(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	h.respond(w, r, body.toRequest(tasks.Standalone, 45))
}

// POST /api/task/{task}/evaluate
func (h *Handler) EvaluateTask(w http.ResponseWriter, r *http.Request) {
	t, err := tasks.Parse(chi.URLParam(r, "task"))
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	body, err := decode(r)
	if err != nil {
		domain.WriteError(w, err)
		return
	}

	h.respond(w, r, body.toRequest(t, 0))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, req Request) {
	feedback, err := h.svc.Evaluate(r.Context(), req)
	if err != nil {
		domain.WriteError(w, err)
		return
	}
	domain.WriteJSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}
