package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// DatabaseURL points at the translation-memory database. Empty
	// means in-process memory only.
	DatabaseURL string
	// TargetLang is the default translation target language.
	TargetLang string
	// Provider selects the translation backend: gemini or googlefree.
	Provider string
	// GeminiAPIKey authenticates the gemini provider.
	GeminiAPIKey string
	// TranslationModel is the gemini model name.
	TranslationModel string
	// BatchSize is the number of distinct strings per provider call.
	BatchSize int
	// RequestDelay is the fixed pause after each rate-limited call.
	RequestDelay time.Duration
	// WorkerCount bounds concurrent file parsing.
	WorkerCount int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		TargetLang:       getEnv("TARGET_LANG", "English"),
		Provider:         getEnv("PROVIDER", "googlefree"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		TranslationModel: getEnv("TRANSLATION_MODEL", "gemini-2.5-flash"),
		BatchSize:        getEnvInt("BATCH_SIZE", 10),
		RequestDelay:     time.Duration(getEnvInt("REQUEST_DELAY_MS", 200)) * time.Millisecond,
		WorkerCount:      getEnvInt("WORKER_COUNT", 8),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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
