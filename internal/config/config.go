// Package config loads runtime configuration from an optional YAML file and
// NOMAD_-prefixed environment variables. A missing API key never fails the
// load; it selects the component's degraded variant at wiring time.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Perplexity PerplexityConfig `koanf:"perplexity"`
	ElevenLabs ElevenLabsConfig `koanf:"elevenlabs"`
	Neo        NeoConfig        `koanf:"neo"`
	Providers  ProvidersConfig  `koanf:"providers"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type PerplexityConfig struct {
	APIKey string `koanf:"api_key"`
}

type ElevenLabsConfig struct {
	APIKey string `koanf:"api_key"`
	// Voices binds voice names from the country table to ElevenLabs voice
	// IDs. Unbound names use the built-in default voice.
	Voices map[string]string `koanf:"voices"`
}

type NeoConfig struct {
	NodeURL string `koanf:"node_url"`
}

type ProvidersConfig struct {
	// Fallback is the fixed provider order for the chat chain.
	Fallback   []string       `koanf:"fallback"`
	OpenRouter ProviderConfig `koanf:"openrouter"`
	Gemini     ProviderConfig `koanf:"gemini"`
}

type ProviderConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

// Load reads the optional YAML file at path (skipped when empty or absent),
// overlays NOMAD_ environment variables, applies defaults and unmarshals.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("NOMAD_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "NOMAD_")), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("neo.node_url") {
		k.Set("neo.node_url", "http://seed1t5.neo.org:20332")
	}
	if !k.Exists("providers.fallback") {
		k.Set("providers.fallback", []string{"openrouter", "gemini"})
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Placeholder keys from a template .env count as absent.
	cfg.Perplexity.APIKey = sanitizeKey(cfg.Perplexity.APIKey)
	cfg.ElevenLabs.APIKey = sanitizeKey(cfg.ElevenLabs.APIKey)
	cfg.Providers.OpenRouter.APIKey = sanitizeKey(cfg.Providers.OpenRouter.APIKey)
	cfg.Providers.Gemini.APIKey = sanitizeKey(cfg.Providers.Gemini.APIKey)

	return &cfg, nil
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.Contains(key, "your-secret") {
		return ""
	}
	return key
}
