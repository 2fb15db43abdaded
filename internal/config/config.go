package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort   string
	LogLevel  string
	LogFormat string

	UploadDir      string
	ArtifactDir    string
	MaxUploadBytes int64

	OCRLanguages       string
	ClassificationMode string
	CategoryModelPath  string
	ParallelExtract    bool

	SummaryBaseURL         string
	SummaryAPIKey          string
	SummaryModel           string
	MaxChunkTokens         int
	SummaryRequestInterval time.Duration
}

// Load reads configuration from the environment, after loading a local .env
// file when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("load .env", "error", err)
	}

	return Config{
		APIPort:   mustEnv("API_PORT", "5000"),
		LogLevel:  mustEnv("LOG_LEVEL", "info"),
		LogFormat: mustEnv("LOG_FORMAT", "json"),

		UploadDir:      mustEnv("UPLOAD_DIR", "./uploads"),
		ArtifactDir:    mustEnv("ARTIFACT_DIR", ""),
		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_BYTES", 16*1024*1024)),

		OCRLanguages:       mustEnv("OCR_LANGUAGES", "mal+eng"),
		ClassificationMode: mustEnv("CLASSIFICATION_MODE", "railway"),
		CategoryModelPath:  mustEnv("CATEGORY_MODEL_PATH", ""),
		ParallelExtract:    mustEnvBool("PARALLEL_EXTRACT", false),

		SummaryBaseURL:         mustEnv("GITHUB_MODELS_ENDPOINT", "https://models.github.ai/inference"),
		SummaryAPIKey:          mustEnv("GITHUB_TOKEN", ""),
		SummaryModel:           mustEnv("GITHUB_MODELS_MODEL", "openai/gpt-4o"),
		MaxChunkTokens:         mustEnvInt("MAX_CHUNK_TOKENS", 5000),
		SummaryRequestInterval: time.Duration(mustEnvInt("CHUNK_DELAY_SECONDS", 3)) * time.Second,
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
