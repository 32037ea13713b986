// Package config loads configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings. Missing API credentials are not fatal: each
// adapter degrades to a deterministic mock so the service can run fully
// offline from hosted APIs.
type Config struct {
	ListenAddr          string
	DatabaseURL         string
	OpenAIAPIKey        string
	GoogleAPIKey        string
	ElevenLabsAPIKey    string
	ChatBaseURL         string
	ChatModel           string
	EmbeddingProvider   string
	EmbeddingModel      string
	EmbeddingDimensions int
	VoiceID             string
	TopK                int
	SimilarityThreshold float64
	HistoryLimit        int
	DataDir             string
}

// Load reads env vars and applies defaults. A .env file is honored when
// present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err.Error())
	}

	cfg := Config{
		ListenAddr:        os.Getenv("LISTEN_ADDR"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ChatBaseURL:       os.Getenv("CHAT_BASE_URL"),
		ChatModel:         os.Getenv("CHAT_MODEL"),
		EmbeddingProvider: os.Getenv("EMBEDDING_PROVIDER"),
		EmbeddingModel:    os.Getenv("EMBEDDING_MODEL"),
		VoiceID:           os.Getenv("VOICE_ID"),
		DataDir:           os.Getenv("DATA_DIR"),
	}

	cfg.EmbeddingDimensions = getEnvInt("EMBEDDING_DIMENSIONS", 1536)
	cfg.TopK = getEnvInt("TOP_K", 5)
	cfg.SimilarityThreshold = getEnvFloat("SIMILARITY_THRESHOLD", 0.5)
	cfg.HistoryLimit = getEnvInt("HISTORY_LIMIT", 10)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o"
	}
	if cfg.EmbeddingProvider == "" {
		cfg.EmbeddingProvider = "openai"
	}
	if cfg.EmbeddingModel == "" {
		switch cfg.EmbeddingProvider {
		case "gemini":
			cfg.EmbeddingModel = "text-embedding-004"
		default:
			cfg.EmbeddingModel = "text-embedding-3-small"
		}
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = "EXAVITQu4vr4xnSDxMaL"
	}
	if cfg.DataDir == "" {
		cfg.DataDir, _ = os.Getwd()
	}

	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}
