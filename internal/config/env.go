// Package config loads process-level settings (backend choice, credentials, logging mode) from
// the environment. Story parameters live in the story package's JSON document instead.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	BackendOffline = "offline"
	BackendOpenAI  = "openai"
)

var (
	ErrInvalidEnv = errors.New("invalid environment config")
)

// Env holds the settings novelist reads from environment variables.
type Env struct {
	Backend       string `env:"NOVELIST_BACKEND" envDefault:"offline"`
	Model         string `env:"NOVELIST_MODEL" envDefault:"gpt-4o"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	GitHubToken   string `env:"GITHUB_TOKEN"`
	LogMode       string `env:"NOVELIST_LOG_MODE" envDefault:"quiet"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendOffline:
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Env{}, fmt.Errorf("%w: OPENAI_API_KEY is required for the %s backend", ErrInvalidEnv, BackendOpenAI)
		}
	default:
		return Env{}, fmt.Errorf("%w: unknown NOVELIST_BACKEND %q (supported: %s, %s)", ErrInvalidEnv, cfg.Backend, BackendOffline, BackendOpenAI)
	}

	return cfg, nil
}
