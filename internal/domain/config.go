package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	API      APIConfig    `toml:"api"`
	Source   SourceConfig `toml:"source"`
	Report   ReportConfig `toml:"report"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
}

// APIConfig holds the task API connection settings from [api] section.
type APIConfig struct {
	BaseURL string `toml:"base_url,omitempty"` // Root URL of the task API (without /api)
	Token   string `toml:"token,omitempty"`    // Token sent as "Authorization: Token <token>"
	Timeout string `toml:"timeout,omitempty"`  // Per-request timeout (e.g. "10s")
}

// SourceConfig selects where snapshots come from, from [source] section.
type SourceConfig struct {
	Kind string `toml:"kind,omitempty"` // "api" (default) or "file"
	File string `toml:"file,omitempty"` // Snapshot file path when kind = "file"
}

// ReportConfig holds report settings from [report] section.
type ReportConfig struct {
	Language        string `toml:"language,omitempty"`         // "pt-BR" (default) or "en"
	RefreshInterval string `toml:"refresh_interval,omitempty"` // Poll interval for watch and the dashboard
}

// ServerConfig holds HTTP server settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address for "taskpulse serve"
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Snapshot source kinds.
const (
	SourceAPI  = "api"
	SourceFile = "file"
)

// Supported report languages.
const (
	LanguagePortuguese = "pt-BR"
	LanguageEnglish    = "en"
)

// Default configuration values.
const (
	DefaultBaseURL         = "http://localhost:8000"
	DefaultAPITimeout      = 10 * time.Second
	DefaultRefreshInterval = 5 * time.Minute
	DefaultLanguage        = LanguagePortuguese
	DefaultServerAddr      = ":8080"
	DefaultLogLevel        = "info"
)

// Directory and file names for taskpulse.
const (
	AppDirName            = "taskpulse"
	ConfigFileName        = "config.toml"
	ProjectConfigFileName = ".taskpulse.toml"
	DismissalsFileName    = "dismissals.json"
	LogsDirName           = "logs"
	LogFileName           = "taskpulse.log"
)

// GlobalConfigDir returns the global taskpulse config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// StateDir returns the directory holding dismissals and logs.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func StateDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName)
}

// DismissalsPath returns the dismissal store path.
func DismissalsPath(stateDir string) string {
	return filepath.Join(stateDir, DismissalsFileName)
}

// LogPath returns the log file path.
func LogPath(stateDir string) string {
	return filepath.Join(stateDir, LogsDirName, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultAPITimeout.String(),
		},
		Source: SourceConfig{
			Kind: SourceAPI,
		},
		Report: ReportConfig{
			Language:        DefaultLanguage,
			RefreshInterval: DefaultRefreshInterval.String(),
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// APITimeout returns the parsed API timeout, falling back to the default
// when the value is empty or invalid.
func (c *Config) APITimeout() time.Duration {
	return parseDurationOr(c.API.Timeout, DefaultAPITimeout)
}

// RefreshInterval returns the parsed refresh interval, falling back to the default
// when the value is empty, invalid or not positive.
func (c *Config) RefreshInterval() time.Duration {
	return parseDurationOr(c.Report.RefreshInterval, DefaultRefreshInterval)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// templateData holds all data for rendering the config template.
type templateData struct {
	BaseURL         string
	Timeout         string
	Language        string
	RefreshInterval string
	Addr            string
	LogLevel        string
}

// RenderConfigTemplate renders the commented config template from cfg.
// Secrets are never written; the token line is always commented out.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		Language:        cfg.Report.Language,
		RefreshInterval: cfg.Report.RefreshInterval,
		Addr:            cfg.Server.Addr,
		LogLevel:        cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
