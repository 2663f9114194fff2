package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no Anthropic API key can be resolved.
var ErrNoAPIKey = errors.New("no Anthropic API key configured")

// KeySource says where a resolved API key came from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// ResolveAPIKey returns the Anthropic API key and its source. The
// ANTHROPIC_API_KEY environment variable wins over the config file; a
// config value with an unexpanded ${VAR} reference counts as unset.
func ResolveAPIKey(cfg *Config) (string, KeySource) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, KeySourceEnv
	}
	if cfg != nil && cfg.Anthropic.APIKey != "" {
		key := os.ExpandEnv(cfg.Anthropic.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, KeySourceConfig
		}
	}
	return "", KeySourceNone
}

// GetAPIKey returns the resolved API key, or ErrNoAPIKey.
func GetAPIKey(cfg *Config) (string, error) {
	key, source := ResolveAPIKey(cfg)
	if source == KeySourceNone {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// GetAPIKeySource returns where the API key was sourced from.
func GetAPIKeySource(cfg *Config) KeySource {
	_, source := ResolveAPIKey(cfg)
	return source
}

// ValidateAPIKey checks the shape of an API key without calling the API.
// Anthropic keys carry an "sk-ant-" prefix.
func ValidateAPIKey(key string) error {
	switch {
	case key == "":
		return ErrNoAPIKey
	case !strings.HasPrefix(key, "sk-ant-"):
		return fmt.Errorf("invalid API key format: expected 'sk-ant-' prefix")
	case len(key) < 20:
		return fmt.Errorf("invalid API key format: key too short")
	}
	return nil
}

// MaskAPIKey renders a key for display, keeping the "sk-ant-" prefix and
// the last four characters.
func MaskAPIKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 15:
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
