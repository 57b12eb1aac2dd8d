package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Workspace storage
	DataDir       string
	WorkspaceTTL  time.Duration
	SweepInterval time.Duration

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Draft generation (OpenAI-compatible)
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	DraftModel        string
	DraftMaxTokens    int
	SourceTokenBudget int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8095"),

		DataDir:       envOr("DATA_DIR", "./output"),
		WorkspaceTTL:  envDuration("WORKSPACE_TTL", 168*time.Hour),
		SweepInterval: envDuration("SWEEP_INTERVAL", 1*time.Hour),

		APIKey: os.Getenv("DITAGEN_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		OpenAIBaseURL:     envOr("OPENAI_API_BASE", "https://api.openai.com/v1"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		DraftModel:        envOr("DRAFT_MODEL", "gpt-4o-mini"),
		DraftMaxTokens:    envInt("DRAFT_MAX_TOKENS", 2048),
		SourceTokenBudget: envInt("DRAFT_SOURCE_TOKEN_BUDGET", 6000),
	}

	if cfg.WorkspaceTTL <= 0 {
		cfg.WorkspaceTTL = 168 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 1 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.DraftMaxTokens <= 0 {
		cfg.DraftMaxTokens = 2048
	}
	if cfg.SourceTokenBudget <= 0 {
		cfg.SourceTokenBudget = 6000
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	return nil
}

// DraftEnabled reports whether draft generation is configured.
func (c Config) DraftEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
