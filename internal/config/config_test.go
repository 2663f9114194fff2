package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Anthropic.Model != "claude-sonnet-4-5" {
		t.Errorf("expected default model claude-sonnet-4-5, got %q", cfg.Anthropic.Model)
	}
	if cfg.Defaults.AgentName != "MultiAgent" {
		t.Errorf("expected default agent name MultiAgent, got %q", cfg.Defaults.AgentName)
	}
	if cfg.Bedrock.Enabled {
		t.Error("expected bedrock disabled by default")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
anthropic:
  api_key: sk-ant-test-key-from-file
  model: claude-haiku-4-5
bedrock:
  enabled: true
  region: us-west-2
defaults:
  agent_name: InvoiceAgent
storage:
  db_path: /tmp/forge.db
  purge_after_days: 30
debug:
  log_path: /tmp/forge.log
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-ant-test-key-from-file" {
		t.Errorf("api key = %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-haiku-4-5" {
		t.Errorf("model = %q", cfg.Anthropic.Model)
	}
	if !cfg.Bedrock.Enabled || cfg.Bedrock.Region != "us-west-2" {
		t.Errorf("bedrock config = %+v", cfg.Bedrock)
	}
	if cfg.Defaults.AgentName != "InvoiceAgent" {
		t.Errorf("agent name = %q", cfg.Defaults.AgentName)
	}
	if cfg.Storage.PurgeAfterDays != 30 {
		t.Errorf("purge after days = %d", cfg.Storage.PurgeAfterDays)
	}
	if cfg.Debug.LogPath != "/tmp/forge.log" {
		t.Errorf("log path = %q", cfg.Debug.LogPath)
	}
}

func TestLoadFromPathExpandsEnv(t *testing.T) {
	t.Setenv("TEST_FORGE_KEY", "sk-ant-expanded")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "anthropic:\n  api_key: ${TEST_FORGE_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Anthropic.APIKey != "sk-ant-expanded" {
		t.Errorf("api key = %q, want expanded env value", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("anthropic:\n  api_key: sk-ant-only-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Anthropic.Model != "claude-sonnet-4-5" {
		t.Errorf("model = %q, want default retained", cfg.Anthropic.Model)
	}
	if cfg.Defaults.AgentName != "MultiAgent" {
		t.Errorf("agent name = %q, want default retained", cfg.Defaults.AgentName)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Anthropic.APIKey = "sk-ant-roundtrip-key"
	cfg.Defaults.AgentName = "ReportAgent"

	if err := Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := LoadFromPath(GetUserConfigPath())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if loaded.Anthropic.APIKey != "sk-ant-roundtrip-key" {
		t.Errorf("api key = %q", loaded.Anthropic.APIKey)
	}
	if loaded.Defaults.AgentName != "ReportAgent" {
		t.Errorf("agent name = %q", loaded.Defaults.AgentName)
	}
}
