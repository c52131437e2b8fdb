package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/taskpulse/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	projectDir    string // Directory holding .taskpulse.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskpulse)
}

// NewManager creates a new Manager.
func NewManager(projectDir string) *Manager {
	return NewManagerWithGlobalDir(projectDir, defaultGlobalConfigDir())
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
func NewManagerWithGlobalDir(projectDir, globalConfDir string) *Manager {
	return &Manager{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// GetProjectConfigInfo returns information about the project config file.
func (m *Manager) GetProjectConfigInfo() domain.ConfigInfo {
	if m.projectDir == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(domain.ProjectConfigPath(m.projectDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitProjectConfig writes the commented template to the project directory.
func (m *Manager) InitProjectConfig(cfg *domain.Config, force bool) (string, error) {
	if m.projectDir == "" {
		return "", errors.New("project directory not available")
	}
	path := domain.ProjectConfigPath(m.projectDir)
	return path, writeTemplate(path, cfg, force)
}

// InitGlobalConfig writes the commented template to the global config directory.
func (m *Manager) InitGlobalConfig(cfg *domain.Config, force bool) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return "", fmt.Errorf("create global config directory: %w", err)
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)
	return path, writeTemplate(path, cfg, force)
}

func writeTemplate(path string, cfg *domain.Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
	}
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	content := domain.RenderConfigTemplate(cfg)
	return os.WriteFile(path, []byte(content), 0o600)
}
