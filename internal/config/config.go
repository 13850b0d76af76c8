package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DataDir     string
	PromptsFile string

	OpenAIKey   string
	Transcriber string // openai | deepgram
	DeepgramKey string
	Synthesizer string // openai | elevenlabs
	ElevenKey   string
	ElevenVoice string

	FFmpegPath          string
	CollaboratorTimeout time.Duration
	RateLimitPerMin     int
	MaxUploadBytes      int64

	S3 S3

	TelegramToken string
	TelegramChat  int64
}

// S3: опциональное зеркало аудио; пустой Endpoint отключает.
type S3 struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Insecure  bool
}

func (s S3) Enabled() bool { return s.Endpoint != "" && s.Bucket != "" }

func (c Config) TelegramEnabled() bool { return c.TelegramToken != "" && c.TelegramChat != 0 }

func (c Config) VocabularyFile() string { return filepath.Join(c.DataDir, "vocabulary_cards.json") }

func (c Config) SettingsFile() string { return filepath.Join(c.DataDir, "config.json") }

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:        get("PORT", "5001"),
		DataDir:     get("DATA_DIR", "./data"),
		PromptsFile: get("PROMPTS_FILE", "./prompts.txt"),

		OpenAIKey:   get("OPENAI_API_KEY", ""),
		Transcriber: strings.ToLower(get("TRANSCRIBER", "openai")),
		DeepgramKey: get("DEEPGRAM_API_KEY", ""),
		Synthesizer: strings.ToLower(get("SYNTHESIZER", "openai")),
		ElevenKey:   get("ELEVENLABS_API_KEY", ""),
		ElevenVoice: get("ELEVENLABS_VOICE_ID", ""),

		FFmpegPath: get("FFMPEG_PATH", ""),

		S3: S3{
			Endpoint:  get("S3_ENDPOINT", ""),
			AccessKey: get("S3_ACCESS_KEY", ""),
			SecretKey: get("S3_SECRET_KEY", ""),
			Bucket:    get("S3_BUCKET", ""),
			Region:    get("S3_REGION", ""),
		},

		TelegramToken: get("TELEGRAM_BOT_TOKEN", ""),
	}

	var err error

	if cfg.CollaboratorTimeout, err = time.ParseDuration(get("COLLABORATOR_TIMEOUT", "120s")); err != nil || cfg.CollaboratorTimeout <= 0 {
		return Config{}, fmt.Errorf("COLLABORATOR_TIMEOUT: invalid duration %q", getenv("COLLABORATOR_TIMEOUT"))
	}

	if cfg.RateLimitPerMin, err = strconv.Atoi(get("RATE_LIMIT_PER_MIN", "30")); err != nil || cfg.RateLimitPerMin < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_MIN: invalid value %q", getenv("RATE_LIMIT_PER_MIN"))
	}

	mb, err := strconv.Atoi(get("MAX_UPLOAD_MB", "50"))
	if err != nil || mb <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB: invalid value %q", getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = int64(mb) << 20

	if raw := get("S3_INSECURE", ""); raw != "" {
		if cfg.S3.Insecure, err = strconv.ParseBool(raw); err != nil {
			return Config{}, fmt.Errorf("S3_INSECURE: invalid bool %q", raw)
		}
	}

	if raw := get("TELEGRAM_ADMIN_CHAT_ID", ""); raw != "" {
		if cfg.TelegramChat, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Config{}, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: invalid id %q", raw)
		}
	}

	switch cfg.Transcriber {
	case "openai":
	case "deepgram":
		if cfg.DeepgramKey == "" {
			return Config{}, fmt.Errorf("TRANSCRIBER=deepgram requires DEEPGRAM_API_KEY")
		}
	default:
		return Config{}, fmt.Errorf("TRANSCRIBER: unknown provider %q", cfg.Transcriber)
	}

	switch cfg.Synthesizer {
	case "openai":
	case "elevenlabs":
		if cfg.ElevenKey == "" || cfg.ElevenVoice == "" {
			return Config{}, fmt.Errorf("SYNTHESIZER=elevenlabs requires ELEVENLABS_API_KEY and ELEVENLABS_VOICE_ID")
		}
	default:
		return Config{}, fmt.Errorf("SYNTHESIZER: unknown provider %q", cfg.Synthesizer)
	}

	return cfg, nil
}
