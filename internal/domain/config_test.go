package domain

import (
	"strings"
	"testing"
	"time"
)

func TestGlobalConfigDir(t *testing.T) {
	got := GlobalConfigDir("/home/user/.config")
	want := "/home/user/.config/taskpulse"
	if got != want {
		t.Errorf("GlobalConfigDir() = %q, want %q", got, want)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/taskpulse/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestProjectConfigPath(t *testing.T) {
	got := ProjectConfigPath("/work/project")
	want := "/work/project/.taskpulse.toml"
	if got != want {
		t.Errorf("ProjectConfigPath() = %q, want %q", got, want)
	}
}

func TestStatePaths(t *testing.T) {
	dir := StateDir("/home/user/.local/state")
	if dir != "/home/user/.local/state/taskpulse" {
		t.Errorf("StateDir() = %q", dir)
	}
	if got := DismissalsPath(dir); got != "/home/user/.local/state/taskpulse/dismissals.json" {
		t.Errorf("DismissalsPath() = %q", got)
	}
	if got := LogPath(dir); got != "/home/user/.local/state/taskpulse/logs/taskpulse.log" {
		t.Errorf("LogPath() = %q", got)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Source.Kind != SourceAPI {
		t.Errorf("Source.Kind = %q, want %q", cfg.Source.Kind, SourceAPI)
	}
	if cfg.Report.Language != LanguagePortuguese {
		t.Errorf("Report.Language = %q, want %q", cfg.Report.Language, LanguagePortuguese)
	}
	if cfg.APITimeout() != 10*time.Second {
		t.Errorf("APITimeout() = %v", cfg.APITimeout())
	}
	if cfg.RefreshInterval() != 5*time.Minute {
		t.Errorf("RefreshInterval() = %v", cfg.RefreshInterval())
	}
}

func TestConfig_DurationFallback(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.API.Timeout = "soon"
	cfg.Report.RefreshInterval = "-1m"

	if cfg.APITimeout() != DefaultAPITimeout {
		t.Errorf("APITimeout() = %v, want default", cfg.APITimeout())
	}
	if cfg.RefreshInterval() != DefaultRefreshInterval {
		t.Errorf("RefreshInterval() = %v, want default", cfg.RefreshInterval())
	}

	cfg.Report.RefreshInterval = "30s"
	if cfg.RefreshInterval() != 30*time.Second {
		t.Errorf("RefreshInterval() = %v, want 30s", cfg.RefreshInterval())
	}
}

func TestRenderConfigTemplate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.API.BaseURL = "https://tasks.example.com"
	cfg.API.Token = "secret-token"

	content := RenderConfigTemplate(cfg)

	for _, want := range []string{
		"[api]",
		`base_url = "https://tasks.example.com"`,
		`language = "pt-BR"`,
		`refresh_interval = "5m0s"`,
		`level = "info"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("template missing %q", want)
		}
	}
	if strings.Contains(content, "secret-token") {
		t.Error("template must not contain the token")
	}
}
