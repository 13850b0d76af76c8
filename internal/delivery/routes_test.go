package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Vovarama1992/toefl_trainer/internal/ai"
	"github.com/Vovarama1992/toefl_trainer/internal/audio"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
	"github.com/Vovarama1992/toefl_trainer/internal/media"
	"github.com/Vovarama1992/toefl_trainer/internal/prompts"
	"github.com/Vovarama1992/toefl_trainer/internal/settings"
	"github.com/Vovarama1992/toefl_trainer/internal/speech"
	"github.com/Vovarama1992/toefl_trainer/internal/vocabulary"
)

type stubSTT struct{}

func (stubSTT) Transcribe(ctx context.Context, a io.Reader, name, lang string) ([]speech.Segment, error) {
	return []speech.Segment{{Start: 0, Text: "hello"}}, nil
}

type stubTTS struct{}

func (stubTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	return []byte("mp3"), nil
}

type stubLLM struct{}

func (stubLLM) Complete(ctx context.Context, key string, m []openai.ChatCompletionMessage) (string, error) {
	return "<h4>Overall Score</h4>", nil
}

func newTestServer(t *testing.T, ratePerMin int) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	notifier := error_notificator.NewService(nil, log)

	promptSvc := prompts.NewService(prompts.NewRepo(dir), prompts.NewTextRepo(filepath.Join(dir, "prompts.txt")), log)
	audioSvc := audio.NewService(audio.NewDiskRepo(dir), promptSvc, nil, log)
	store := settings.NewStore(filepath.Join(dir, "config.json"), log)

	r := NewRouter()
	RegisterRoutes(
		r,
		prompts.NewHandler(promptSvc),
		audio.NewHandler(audioSvc, 1<<20),
		vocabulary.NewHandler(vocabulary.NewService(vocabulary.NewRepo(filepath.Join(dir, "vocabulary_cards.json")), log)),
		settings.NewHandler(store),
		speech.NewHandler(speech.NewService(stubSTT{}, stubTTS{}, notifier, 0, log), 1<<20),
		ai.NewHandler(ai.NewAiService(stubLLM{}, notifier, 0, log)),
		media.NewHandler(media.NewMediaService(&media.FFmpegConverter{}, notifier, 0, log), 1<<20),
		NewSummaryHandler(promptSvc, store),
		ratePerMin,
	)
	return r, dir
}

func call(h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	h, _ := newTestServer(t, 0)
	rec := call(h, http.MethodGet, "/ping", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Errorf("got %d %q", rec.Code, rec.Body)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id")
	}
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	h, _ := newTestServer(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc" {
		t.Errorf("request id = %q", got)
	}
}

func TestSummary_FirstPromptDefaulting(t *testing.T) {
	h, _ := newTestServer(t, 0)

	call(h, http.MethodPost, "/save_config", `{"api_key":"sk-test"}`)
	call(h, http.MethodPost, "/save_prompts", `{"prompts":"Describe a favorite place."}`)
	call(h, http.MethodPost, "/api/task/2/prompts", `{"reading":"R2 first"}`)
	call(h, http.MethodPost, "/api/task/2/prompts", `{"reading":"R2 second"}`)
	call(h, http.MethodPost, "/api/task/4/prompts", `{"notes":"N4","question":"Q4"}`)

	rec := call(h, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"api_key":       "sk-test",
		"task1_content": "Describe a favorite place.",
		"task2_content": "R2 first",
		"task3_content": "",
		"task4_content": "N4",
	}
	for k, v := range want {
		if out[k] != v {
			t.Errorf("%s = %q, want %q", k, out[k], v)
		}
	}
}

func TestSaved(t *testing.T) {
	h, _ := newTestServer(t, 0)
	call(h, http.MethodPost, "/api/task/3/prompts", `{"reading":"Concept","question":"Q"}`)

	rec := call(h, http.MethodGet, "/api/task/3/saved", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"content":"Concept"`) {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}

	rec = call(h, http.MethodGet, "/api/task/1/saved", "")
	if rec.Code != http.StatusOK {
		t.Errorf("task 1 status = %d", rec.Code)
	}

	rec = call(h, http.MethodGet, "/api/task/5/saved", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("task 5 status = %d", rec.Code)
	}
}

func TestSummary_StandaloneTextIsRaw(t *testing.T) {
	h, _ := newTestServer(t, 0)

	call(h, http.MethodPost, "/save_prompts", `{"prompts":"  Describe a favorite place.\n\n"}`)

	var summary map[string]string
	rec := call(h, http.MethodGet, "/api/summary", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if got := summary["task1_content"]; got != "  Describe a favorite place.\n\n" {
		t.Errorf("task1_content = %q", got)
	}

	var task1 map[string]string
	rec = call(h, http.MethodGet, "/api/task1/prompts", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &task1); err != nil {
		t.Fatal(err)
	}
	if got := task1["prompts"]; got != "Describe a favorite place." {
		t.Errorf("task1 prompts = %q", got)
	}
}

func TestSummary_CorruptStoreDegrades(t *testing.T) {
	h, dir := newTestServer(t, 0)
	if err := os.MkdirAll(filepath.Join(dir, "task2"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "task2", "prompts.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := call(h, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"task2_content":""`) {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
}

func TestCollaboratorRoutes(t *testing.T) {
	h, _ := newTestServer(t, 0)

	rec := call(h, http.MethodPost, "/evaluate", `{"api_key":"k","transcript":"x"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Overall Score") {
		t.Errorf("evaluate: %d %s", rec.Code, rec.Body)
	}

	rec = call(h, http.MethodPost, "/create_audio", `{"text":"hi"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"audio":"bXAz"`) {
		t.Errorf("create_audio: %d %s", rec.Code, rec.Body)
	}
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		if rec := call(h, http.MethodPost, "/create_audio", `{"text":"hi"}`); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	if rec := call(h, http.MethodPost, "/create_audio", `{"text":"hi"}`); rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d", rec.Code)
	}
	// store routes are not limited
	if rec := call(h, http.MethodGet, "/api/vocabulary_cards", ""); rec.Code != http.StatusOK {
		t.Errorf("vocabulary status = %d", rec.Code)
	}
}
