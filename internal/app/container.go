// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/infra/apiclient"
	"github.com/runoshun/taskpulse/internal/infra/config"
	"github.com/runoshun/taskpulse/internal/infra/jsonstore"
	"github.com/runoshun/taskpulse/internal/infra/logging"
	"github.com/runoshun/taskpulse/internal/infra/metrics"
	"github.com/runoshun/taskpulse/internal/infra/snapshotfile"
	"github.com/runoshun/taskpulse/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ProjectDir     string // Directory holding .taskpulse.toml and .env
	StateDir       string // Directory holding dismissals and logs
	DismissalsPath string // Path to dismissals.json
}

// Options adjusts container construction.
type Options struct {
	Stderr       io.Writer // Destination of the slog handler; os.Stderr when nil
	Dir          string    // Project directory
	SnapshotFile string    // Read snapshots from this file instead of the configured source
}

// newConfig derives the application paths from the project directory.
func newConfig(dir string) Config {
	stateDir := domain.StateDir(defaultStateHome())
	return Config{
		ProjectDir:     dir,
		StateDir:       stateDir,
		DismissalsPath: domain.DismissalsPath(stateDir),
	}
}

func defaultStateHome() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return stateHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "state")
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Snapshots     domain.SnapshotProvider
	Dismissals    domain.DismissalStore
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	EventLog      domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	closeLog  func() error

	// Configuration
	Config Config
}

// New creates a new Container rooted at opts.Dir.
func New(opts Options) (*Container, error) {
	cfg := newConfig(opts.Dir)

	configLoader := config.NewLoader(cfg.ProjectDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))
	for _, w := range appConfig.Warnings {
		logger.Warn("config", slog.String("warning", w))
	}

	fileLog := logging.New(cfg.StateDir, level)
	clock := domain.RealClock{}
	m := metrics.New()

	// Built on first fetch; config and --file commands must not depend on [source]
	provider := newLazySource(func() (domain.SnapshotProvider, error) {
		return newSnapshotProvider(appConfig, opts.SnapshotFile, clock, fileLog)
	})

	return &Container{
		Snapshots:     m.InstrumentProvider(provider),
		Dismissals:    jsonstore.New(cfg.DismissalsPath),
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.ProjectDir),
		EventLog:      fileLog,
		AppConfig:     appConfig,
		Metrics:       m,
		Logger:        logger,
		closeLog:      fileLog.Close,
		Config:        cfg,
	}, nil
}

// newSnapshotProvider selects the snapshot source. A file override wins over configuration.
func newSnapshotProvider(cfg *domain.Config, file string, clock domain.Clock, log domain.Logger) (domain.SnapshotProvider, error) {
	kind := cfg.Source.Kind
	if file != "" {
		kind = domain.SourceFile
	} else {
		file = cfg.Source.File
	}

	switch kind {
	case domain.SourceFile:
		return snapshotfile.New(file, clock)
	case domain.SourceAPI, "":
		return apiclient.New(apiclient.Options{
			BaseURL: cfg.API.BaseURL,
			Token:   cfg.API.Token,
			Timeout: cfg.APITimeout(),
			Logger:  log,
			Clock:   clock,
		})
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, kind)
	}
}

// UseSnapshotFile replaces the snapshot source with the file at path.
func (c *Container) UseSnapshotFile(path string) error {
	p, err := snapshotfile.New(path, c.Clock)
	if err != nil {
		return err
	}
	c.Snapshots = c.Metrics.InstrumentProvider(p)
	return nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, snapshots domain.SnapshotProvider, dismissals domain.DismissalStore, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		Snapshots:  snapshots,
		Dismissals: dismissals,
		Clock:      clock,
		EventLog:   domain.NopLogger{},
		AppConfig:  appConfig,
		Metrics:    metrics.New(),
		Logger:     logger,
		Config:     cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// UseCase factory methods

// BuildReportUseCase returns a new BuildReport use case.
func (c *Container) BuildReportUseCase() *usecase.BuildReport {
	return usecase.NewBuildReport(c.Snapshots, c.Dismissals, c.Clock, c.EventLog, c.Metrics, c.AppConfig.Report.Language)
}

// ExportReportUseCase returns a new ExportReport use case.
func (c *Container) ExportReportUseCase() *usecase.ExportReport {
	return usecase.NewExportReport(c.BuildReportUseCase(), c.EventLog)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Snapshots, c.Clock, c.EventLog, c.AppConfig.Report.Language)
}

// WatchReportUseCase returns a new WatchReport use case.
func (c *Container) WatchReportUseCase() *usecase.WatchReport {
	return usecase.NewWatchReport(c.BuildReportUseCase(), c.EventLog)
}

// DismissSuggestionUseCase returns a new DismissSuggestion use case.
func (c *Container) DismissSuggestionUseCase() *usecase.DismissSuggestion {
	return usecase.NewDismissSuggestion(c.Dismissals, c.Clock, c.EventLog)
}

// RestoreSuggestionsUseCase returns a new RestoreSuggestions use case.
func (c *Container) RestoreSuggestionsUseCase() *usecase.RestoreSuggestions {
	return usecase.NewRestoreSuggestions(c.Dismissals, c.EventLog)
}

// ListDismissalsUseCase returns a new ListDismissals use case.
func (c *Container) ListDismissalsUseCase() *usecase.ListDismissals {
	return usecase.NewListDismissals(c.Dismissals)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// MirrorEvents copies file log entries to the stderr slog logger.
func (c *Container) MirrorEvents() {
	if l, ok := c.EventLog.(*logging.Logger); ok {
		l.WithMirror(c.Logger)
	}
}
