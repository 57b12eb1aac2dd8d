package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "WORKSPACE_TTL", "MAX_UPLOAD_BYTES", "DRAFT_MODEL", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8095" {
		t.Errorf("Port = %q, want 8095", cfg.Port)
	}
	if cfg.DataDir != "./output" {
		t.Errorf("DataDir = %q, want ./output", cfg.DataDir)
	}
	if cfg.WorkspaceTTL != 168*time.Hour {
		t.Errorf("WorkspaceTTL = %v, want 168h", cfg.WorkspaceTTL)
	}
	if cfg.MaxUploadBytes != 20971520 {
		t.Errorf("MaxUploadBytes = %d, want 20971520", cfg.MaxUploadBytes)
	}
	if cfg.DraftModel != "gpt-4o-mini" {
		t.Errorf("DraftModel = %q", cfg.DraftModel)
	}
	if cfg.DraftEnabled() {
		t.Error("DraftEnabled must be false without an API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKSPACE_TTL", "24h")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.WorkspaceTTL != 24*time.Hour {
		t.Errorf("WorkspaceTTL = %v, want 24h", cfg.WorkspaceTTL)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d, want 1024", cfg.MaxUploadBytes)
	}
	if !cfg.DraftEnabled() {
		t.Error("DraftEnabled must be true with an API key")
	}
}

func TestLoad_ClampsBadValues(t *testing.T) {
	t.Setenv("WORKSPACE_TTL", "-1h")
	t.Setenv("DRAFT_MAX_TOKENS", "-5")

	cfg := Load()
	if cfg.WorkspaceTTL != 168*time.Hour {
		t.Errorf("WorkspaceTTL = %v, want default", cfg.WorkspaceTTL)
	}
	if cfg.DraftMaxTokens != 2048 {
		t.Errorf("DraftMaxTokens = %d, want default", cfg.DraftMaxTokens)
	}
}

func TestLoad_IgnoresUnparseable(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("WORKSPACE_TTL", "soon")

	cfg := Load()
	if cfg.MaxUploadBytes != 20971520 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
	if cfg.WorkspaceTTL != 168*time.Hour {
		t.Errorf("WorkspaceTTL = %v, want default", cfg.WorkspaceTTL)
	}
}
