package main

import (
	"testing"

	"fist-chat/internal/app"
)

func TestApplyEnvOverrides_ServerURL(t *testing.T) {
	t.Setenv("FIST_SERVER_URL", "http://faq.example:9000")

	cfg := app.DefaultConfig()
	applyEnvOverrides(&cfg)

	if cfg.ServerURL != "http://faq.example:9000" {
		t.Fatalf("server url = %q, want env override", cfg.ServerURL)
	}
}

func TestApplyEnvOverrides_EmptyEnvKeepsConfig(t *testing.T) {
	t.Setenv("FIST_SERVER_URL", "")
	t.Setenv("FIST_LOG_FILE", "")

	cfg := app.DefaultConfig()
	cfg.ServerURL = "http://from-config:8000"
	applyEnvOverrides(&cfg)

	if cfg.ServerURL != "http://from-config:8000" {
		t.Fatalf("server url = %q, want config value preserved", cfg.ServerURL)
	}
}

func TestGenerateCompletion_RejectsUnknownShell(t *testing.T) {
	if err := generateCompletion("powershell"); err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
	for _, shell := range []string{"bash", "zsh", "fish"} {
		if err := generateCompletion(shell); err != nil {
			t.Fatalf("completion for %s failed: %v", shell, err)
		}
	}
}
