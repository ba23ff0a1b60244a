package config

import (
	"errors"
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NOVELIST_BACKEND", "NOVELIST_MODEL", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "GITHUB_TOKEN", "NOVELIST_LOG_MODE",
	} {
		// Setenv registers the restore; the variable itself must be absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendOffline {
		t.Errorf("expected offline backend, got %q", cfg.Backend)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if cfg.LogMode != "quiet" {
		t.Errorf("expected quiet log mode, got %q", cfg.LogMode)
	}
}

func TestParseEnv_OpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOVELIST_BACKEND", " OpenAI ")
	t.Setenv("NOVELIST_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendOpenAI {
		t.Errorf("expected openai backend, got %q", cfg.Backend)
	}
	if cfg.Model != "gpt-4o-mini" || cfg.OpenAIAPIKey != "sk-test" || cfg.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "openai without key", env: map[string]string{"NOVELIST_BACKEND": "openai"}},
		{name: "unknown backend", env: map[string]string{"NOVELIST_BACKEND": "llama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseEnv(); !errors.Is(err, ErrInvalidEnv) {
				t.Fatalf("expected ErrInvalidEnv, got %v", err)
			}
		})
	}
}
