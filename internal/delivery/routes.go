package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/Vovarama1992/toefl_trainer/internal/ai"
	"github.com/Vovarama1992/toefl_trainer/internal/audio"
	"github.com/Vovarama1992/toefl_trainer/internal/media"
	"github.com/Vovarama1992/toefl_trainer/internal/prompts"
	"github.com/Vovarama1992/toefl_trainer/internal/settings"
	"github.com/Vovarama1992/toefl_trainer/internal/speech"
	"github.com/Vovarama1992/toefl_trainer/internal/vocabulary"
)

const requestIDHeader = "X-Request-Id"

// RequestID проставляет id запроса, если клиент его не прислал.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}))
	r.Use(RequestID)
	return r
}

func RegisterRoutes(
	r chi.Router,
	hPrompts *prompts.Handler,
	hAudio *audio.Handler,
	hVocab *vocabulary.Handler,
	hSettings *settings.Handler,
	hSpeech *speech.Handler,
	hAI *ai.Handler,
	hMedia *media.Handler,
	hSummary *SummaryHandler,
	ratePerMin int,
) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- сводка для страниц ---
		pr.Get("/api/summary", hSummary.Summary)
		pr.Get("/api/task/{task}/saved", hSummary.Saved)

		// --- task 1 и настройки ---
		pr.Get("/api/task1/prompts", hPrompts.GetStandalone)
		pr.Post("/save_prompts", hPrompts.SaveStandalone)
		pr.Post("/save_config", hSettings.Save)

		// --- словарь ---
		pr.Get("/api/vocabulary_cards", hVocab.List)
		pr.Post("/api/vocabulary_cards", hVocab.Add)
		pr.Delete("/api/vocabulary_cards/{index}", hVocab.Delete)

		// --- промпты заданий 2-4 ---
		pr.Get("/api/task/{task}/prompts/list", hPrompts.List)
		pr.Get("/api/task/{task}/prompts/{id}", hPrompts.Get)
		pr.Post("/api/task/{task}/prompts", hPrompts.Create)
		pr.Put("/api/task/{task}/prompts/{id}", hPrompts.Update)
		pr.Delete("/api/task/{task}/prompts/{id}", hPrompts.Delete)
		pr.Get("/api/task/{task}/content", hPrompts.GetContent)
		pr.Post("/api/task/{task}/content", hPrompts.SaveContent)

		// --- аудио ---
		pr.Post("/api/task/{task}/upload_audio", hAudio.Upload)
		pr.Get("/api/task/{task}/audio/list", hAudio.List)
		pr.Get("/api/task/{task}/audio", hAudio.ServePromptAudio)
		pr.Get("/api/task/{task}/audio/{filename}", hAudio.Serve)

		// --- внешние сервисы (лимит на IP) ---
		pr.Group(func(cr chi.Router) {
			if ratePerMin > 0 {
				cr.Use(httprate.LimitByIP(ratePerMin, time.Minute))
			}
			cr.Post("/transcribe", hSpeech.Transcribe)
			cr.Post("/create_audio", hSpeech.CreateAudio)
			cr.Post("/evaluate", hAI.EvaluateStandalone)
			cr.Post("/api/task/{task}/evaluate", hAI.EvaluateTask)
			cr.Post("/convert_to_mp3", hMedia.ConvertToMP3)
		})
	})
}
