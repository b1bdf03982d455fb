package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "8020" {
		t.Errorf("unexpected port: %s", cfg.Port)
	}
	if cfg.OllamaModel != "deepseek-r1" {
		t.Errorf("unexpected model: %s", cfg.OllamaModel)
	}
	if cfg.ConversationTTL != 24*time.Hour {
		t.Errorf("unexpected TTL: %s", cfg.ConversationTTL)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("unexpected sweep interval: %s", cfg.SweepInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OLLAMA_MODEL", "llama3.2")
	t.Setenv("CONVERSATION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("unexpected port: %s", cfg.Port)
	}
	if cfg.OllamaModel != "llama3.2" {
		t.Errorf("unexpected model: %s", cfg.OllamaModel)
	}
	if cfg.ConversationTTL != 30*time.Minute {
		t.Errorf("unexpected TTL: %s", cfg.ConversationTTL)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("unexpected sweep interval: %s", cfg.SweepInterval)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Port:            "8020",
		OllamaURL:       "http://localhost:11434",
		UploadsDir:      "uploads",
		ConversationTTL: time.Hour,
		SweepInterval:   time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.UploadsDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty uploads dir should be rejected")
	}
}
