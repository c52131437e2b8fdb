// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Environment variables that override file configuration.
const (
	EnvAPIURL   = "TASKPULSE_API_URL"
	EnvAPIToken = "TASKPULSE_API_TOKEN"
	EnvLanguage = "TASKPULSE_LANGUAGE"
	EnvLogLevel = "TASKPULSE_LOG_LEVEL"
)

// DotEnvFileName is read from the project directory when present.
const DotEnvFileName = ".env"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	projectDir    string // Directory holding .taskpulse.toml and .env
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskpulse)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return NewLoaderWithGlobalDir(projectDir, defaultGlobalConfigDir())
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
		getenv:        os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- project <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	return mergeConfigs(base, env), nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	path := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	cfg, err := loadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("parse global config %s: %w", path, err)
	}
	return cfg, err
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	path := domain.ProjectConfigPath(l.projectDir)
	cfg, err := loadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("parse project config %s: %w", path, err)
	}
	return cfg, err
}

// environment builds an override config from the process environment,
// falling back to values in the project's .env file.
func (l *Loader) environment() (*domain.Config, error) {
	dotenv := map[string]string{}
	if l.projectDir != "" {
		m, err := godotenv.Read(filepath.Join(l.projectDir, DotEnvFileName))
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", DotEnvFileName, err)
		}
	}

	lookup := func(key string) string {
		if v := l.getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	cfg := &domain.Config{}
	cfg.API.BaseURL = lookup(EnvAPIURL)
	cfg.API.Token = lookup(EnvAPIToken)
	cfg.Report.Language = lookup(EnvLanguage)
	cfg.Log.Level = lookup(EnvLogLevel)
	return cfg, nil
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// stringFields maps the keys of a section to their destination.
type stringFields map[string]*string

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	sections := map[string]stringFields{
		"api": {
			"base_url": &res.API.BaseURL,
			"token":    &res.API.Token,
			"timeout":  &res.API.Timeout,
		},
		"source": {
			"kind": &res.Source.Kind,
			"file": &res.Source.File,
		},
		"report": {
			"language":         &res.Report.Language,
			"refresh_interval": &res.Report.RefreshInterval,
		},
		"server": {
			"addr": &res.Server.Addr,
		},
		"log": {
			"level": &res.Log.Level,
		},
	}

	var warnings []string
	for section, value := range raw {
		fields, ok := sections[section]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("section [%s] must be a table", section))
			continue
		}
		for k, v := range m {
			dst, ok := fields[k]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
				continue
			}
			s, ok := v.(string)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("[%s].%s must be a string", section, k))
				continue
			}
			*dst = s
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with non-empty override values taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&result.API.BaseURL, override.API.BaseURL)
	set(&result.API.Token, override.API.Token)
	set(&result.API.Timeout, override.API.Timeout)
	set(&result.Source.Kind, override.Source.Kind)
	set(&result.Source.File, override.Source.File)
	set(&result.Report.Language, override.Report.Language)
	set(&result.Report.RefreshInterval, override.Report.RefreshInterval)
	set(&result.Server.Addr, override.Server.Addr)
	set(&result.Log.Level, override.Log.Level)

	return &result
}
