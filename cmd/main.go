package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/Vovarama1992/toefl_trainer/internal/ai"
	"github.com/Vovarama1992/toefl_trainer/internal/audio"
	"github.com/Vovarama1992/toefl_trainer/internal/config"
	"github.com/Vovarama1992/toefl_trainer/internal/delivery"
	"github.com/Vovarama1992/toefl_trainer/internal/error_notificator"
	"github.com/Vovarama1992/toefl_trainer/internal/infra"
	"github.com/Vovarama1992/toefl_trainer/internal/media"
	"github.com/Vovarama1992/toefl_trainer/internal/ports"
	"github.com/Vovarama1992/toefl_trainer/internal/prompts"
	"github.com/Vovarama1992/toefl_trainer/internal/settings"
	"github.com/Vovarama1992/toefl_trainer/internal/speech"
	"github.com/Vovarama1992/toefl_trainer/internal/vocabulary"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE (опционально: S3 зеркало, telegram-алерты)
	// =========================================================================

	var mirror ports.S3Client
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		mirror, err = infra.NewS3Client(ctx, infra.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Insecure:  cfg.S3.Insecure,
		})
		cancel()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	var errInfra error_notificator.Notificator
	if cfg.TelegramEnabled() {
		tg, err := error_notificator.NewTelegramInfra(cfg.TelegramToken, cfg.TelegramChat)
		if err != nil {
			log.Fatalf("failed to init telegram notifier: %v", err)
		}
		errInfra = tg
	}
	errService := error_notificator.NewService(errInfra, zl)

	ffmpeg := media.NewFFmpegConverter(cfg.FFmpegPath)
	if ffmpeg.Available() {
		zl.Log(logger.LogEntry{Level: "info", Message: "ffmpeg found: " + ffmpeg.Path(), Service: "media"})
	} else {
		zl.Log(logger.LogEntry{Level: "warn", Message: "ffmpeg not found, mp3 conversion disabled", Service: "media"})
	}

	// =========================================================================
	// STORES
	// =========================================================================

	store := settings.NewStore(cfg.SettingsFile(), zl)

	promptService := prompts.NewService(
		prompts.NewRepo(cfg.DataDir),
		prompts.NewTextRepo(cfg.PromptsFile),
		zl,
	)
	audioService := audio.NewService(audio.NewDiskRepo(cfg.DataDir), promptService, mirror, zl)
	vocabService := vocabulary.NewService(vocabulary.NewRepo(cfg.VocabularyFile()), zl)

	// =========================================================================
	// CLIENTS (STT / TTS / GPT / FFmpeg)
	// =========================================================================

	// ключ из config.json, иначе OPENAI_API_KEY
	openAIKey := func(ctx context.Context) string {
		if k := store.APIKey(ctx); k != "" {
			return k
		}
		return cfg.OpenAIKey
	}
	openAIClient := speech.NewOpenAIClient(openAIKey)

	var stt speech.Transcriber = openAIClient
	if cfg.Transcriber == "deepgram" {
		stt = speech.NewDeepgramClient(cfg.DeepgramKey)
	}

	var tts speech.Synthesizer = openAIClient
	if cfg.Synthesizer == "elevenlabs" {
		tts = speech.NewElevenLabsClient(cfg.ElevenKey, cfg.ElevenVoice)
	}

	speechService := speech.NewService(stt, tts, errService, cfg.CollaboratorTimeout, zl)
	aiService := ai.NewAiService(ai.NewOpenAIClient(), errService, cfg.CollaboratorTimeout, zl)
	mediaService := media.NewMediaService(ffmpeg, errService, cfg.CollaboratorTimeout, zl)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := delivery.NewRouter()

	delivery.RegisterRoutes(
		r,
		prompts.NewHandler(promptService),
		audio.NewHandler(audioService, cfg.MaxUploadBytes),
		vocabulary.NewHandler(vocabService),
		settings.NewHandler(store),
		speech.NewHandler(speechService, cfg.MaxUploadBytes),
		ai.NewHandler(aiService),
		media.NewHandler(mediaService, cfg.MaxUploadBytes),
		delivery.NewSummaryHandler(promptService, store),
		cfg.RateLimitPerMin,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + ", data in " + filepath.Clean(cfg.DataDir),
		Service: "toefl_trainer",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
