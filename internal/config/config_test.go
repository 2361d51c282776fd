package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/briefings",
			expected: filepath.Join(home, "briefings"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/briefings/2026/october",
			expected: filepath.Join(home, "briefings", "2026", "october"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/tflash.log",
			expected: "/var/log/tflash.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/tflash.log",
			expected: "logs/tflash.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with slash",
			input:    "~/",
			expected: filepath.Join(home, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() = %v, want 2 paths", paths)
	}

	// Last path should be local config.toml
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "tflash", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFiles_Defaults(t *testing.T) {
	t.Setenv(EnvWebhookURL, "")

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}

	if cfg.Playback.Volume != 0.7 {
		t.Errorf("Volume = %v, want 0.7", cfg.Playback.Volume)
	}
	if cfg.Playback.Rate != 1.0 {
		t.Errorf("Rate = %v, want 1.0", cfg.Playback.Rate)
	}
	if cfg.SkipInterval() != 15*time.Second {
		t.Errorf("SkipInterval = %v, want 15s", cfg.SkipInterval())
	}
	if cfg.Playback.Placeholder != "placeholder:30s" {
		t.Errorf("Placeholder = %q", cfg.Playback.Placeholder)
	}
	if cfg.Media.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.Media.FetchTimeout)
	}
	if cfg.Remote.Addr != "localhost:52846" {
		t.Errorf("Remote.Addr = %q", cfg.Remote.Addr)
	}
	if len(cfg.Preferences.Topics) != 3 || cfg.Preferences.Topics[0] != "technology" {
		t.Errorf("Topics = %v", cfg.Preferences.Topics)
	}
	if !cfg.NotificationsEnabled() {
		t.Error("notifications should default to enabled")
	}
	if cfg.HasWebhook() {
		t.Error("webhook should not be configured by default")
	}
}

func TestLoadFiles_LastFileWins(t *testing.T) {
	t.Setenv(EnvWebhookURL, "")
	dir := t.TempDir()
	global := writeConfig(t, dir, "global.toml", `
[playback]
volume = 0.4
rate = 1.5

[preferences]
topics = ["Science", " Health "]
notifications = false
`)
	local := writeConfig(t, dir, "local.toml", `
[playback]
rate = 0.75

[log]
level = "debug"
`)

	cfg, err := LoadFiles(global, local)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}

	if cfg.Playback.Volume != 0.4 {
		t.Errorf("Volume = %v, want 0.4", cfg.Playback.Volume)
	}
	if cfg.Playback.Rate != 0.75 {
		t.Errorf("Rate = %v, want 0.75", cfg.Playback.Rate)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Preferences.Topics) != 2 || cfg.Preferences.Topics[1] != "health" {
		t.Errorf("Topics = %v, want normalized [science health]", cfg.Preferences.Topics)
	}
	if cfg.NotificationsEnabled() {
		t.Error("notifications = false should be respected")
	}
}

func TestLoadFiles_EnvOverridesWebhook(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
[workflow]
webhook_url = "https://file.example/hook"
`)
	t.Setenv(EnvWebhookURL, "https://env.example/webhook/news")

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if cfg.Workflow.WebhookURL != "https://env.example/webhook/news" {
		t.Errorf("WebhookURL = %q", cfg.Workflow.WebhookURL)
	}
	if !cfg.HasWebhook() {
		t.Error("HasWebhook() = false, want true")
	}
}

func TestLoadFiles_Invalid(t *testing.T) {
	t.Setenv(EnvWebhookURL, "")

	tests := []struct {
		name    string
		content string
	}{
		{"volume above one", "[playback]\nvolume = 1.5\n"},
		{"rate below minimum", "[playback]\nrate = 0.25\n"},
		{"unknown log level", "[log]\nlevel = \"verbose\"\n"},
		{"bad briefing length", "[preferences]\nbriefing_length = 7\n"},
		{"webhook not a url", "[workflow]\nwebhook_url = \"not a url\"\n"},
		{"bad remote addr", "[remote]\naddr = \"nowhere\"\n"},
		{"malformed toml", "[playback\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tt.content)
			if _, err := LoadFiles(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() is invalid: %v", err)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	cfg.Log.File = "/tmp/custom.log"

	got, err := cfg.LogPath()
	if err != nil {
		t.Fatalf("LogPath failed: %v", err)
	}
	if got != "/tmp/custom.log" {
		t.Errorf("LogPath = %q, want /tmp/custom.log", got)
	}
}
