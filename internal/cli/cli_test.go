package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpulse/internal/app"
	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/testutil"
	"github.com/runoshun/taskpulse/internal/tui"
	"github.com/runoshun/taskpulse/internal/usecase"
)

type testEnv struct {
	container *app.Container
	provider  *testutil.MockSnapshotProvider
	store     *testutil.MockDismissalStore
	manager   *testutil.MockConfigManager
	loader    *testutil.MockConfigLoader
}

func newTestEnv(t *testing.T, dismissed ...string) *testEnv {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Report.Language = domain.LanguageEnglish

	env := &testEnv{
		provider: testutil.NewMockSnapshotProvider(testutil.SampleSnapshot()),
		store:    testutil.NewMockDismissalStore(dismissed...),
		manager:  testutil.NewMockConfigManager(),
		loader:   &testutil.MockConfigLoader{Config: cfg},
	}
	env.container = app.NewWithDeps(app.Config{ProjectDir: t.TempDir()}, cfg, env.provider, env.store,
		&testutil.MockClock{NowTime: testutil.FixtureNow}, nil)
	env.container.ConfigLoader = env.loader
	env.container.ConfigManager = env.manager
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &syncBuffer{}
	err := e.runContext(context.Background(), out, args...)
	return out.String(), err
}

func (e *testEnv) runContext(ctx context.Context, out io.Writer, args ...string) error {
	root := NewRootCommand(e.container, "test-version")
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// syncBuffer is a bytes.Buffer that can be read while a command writes to it.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// watchUntilOutput runs args and cancels the command once it has written something.
func (e *testEnv) watchUntilOutput(t *testing.T, args ...string) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	go func() {
		for out.String() == "" {
			time.Sleep(5 * time.Millisecond)
		}
		cancel()
	}()

	require.NoError(t, e.runContext(ctx, out, args...))
	return out.String()
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	called := false
	launchTUIFunc = func(_ context.Context, _ *app.Container, _ tui.Options) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	require.NoError(t, root.Execute())
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_Help(t *testing.T) {
	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	called := false
	launchTUIFunc = func(_ context.Context, _ *app.Container, _ tui.Options) error {
		called = true
		return nil
	}

	var out bytes.Buffer
	root := NewRootCommand(nil, "test-version")
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	assert.False(t, called)
	assert.Contains(t, out.String(), "Report Commands:")
	assert.Contains(t, out.String(), "Suggestion Management:")
	assert.Contains(t, out.String(), "Setup Commands:")
}

func TestReport_Text(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "report")
	require.NoError(t, err)

	assert.Contains(t, out, "Productivity Report")
	assert.Contains(t, out, "Total tasks")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "[overdue-tasks]")
	assert.Contains(t, out, "[focus-high-priority]")
	assert.Contains(t, out, "Deadlines")
	assert.Contains(t, out, "[task-1-overdue]")
	assert.Contains(t, out, `"Pay rent" is overdue`)
	assert.NotContains(t, out, "hidden")
}

func TestReport_TextPortuguese(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "report", "--lang", "pt-BR")
	require.NoError(t, err)

	assert.Contains(t, out, "Relatório de Produtividade")
	assert.Contains(t, out, "Total de Tarefas")
	assert.Contains(t, out, "Prazos")
	assert.Contains(t, out, `"Pay rent" está atrasada`)
}

func TestReport_JSONAlerts(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "report", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Alerts []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Alerts, 1)
	assert.Equal(t, "task-1-overdue", doc.Alerts[0].ID)
	assert.Equal(t, domain.AlertOverdue, doc.Alerts[0].Kind)
	assert.Equal(t, 1, doc.Alerts[0].TaskID)
}

func TestReport_JSONHidesDismissed(t *testing.T) {
	env := newTestEnv(t, domain.SuggestionOverdueTasks)

	out, err := env.run(t, "report", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Language    string              `json:"language"`
		Suggestions []domain.Suggestion `json:"suggestions"`
		Stats       domain.Stats        `json:"stats"`
		Hidden      int                 `json:"hidden"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, domain.LanguageEnglish, doc.Language)
	assert.Equal(t, 1, doc.Hidden)
	require.Len(t, doc.Suggestions, 1)
	assert.Equal(t, domain.SuggestionFocusHighPriority, doc.Suggestions[0].ID)
	assert.Equal(t, 2, doc.Stats.Total)
}

func TestReport_JSONAll(t *testing.T) {
	env := newTestEnv(t, domain.SuggestionOverdueTasks)

	out, err := env.run(t, "report", "-o", "json", "--all")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["suggestions"], 2)
	assert.EqualValues(t, 0, doc["hidden"])
}

func TestReport_YAML(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "report", "-o", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, domain.LanguageEnglish, doc["language"])
	assert.Contains(t, doc, "stats")
	assert.Contains(t, doc, "hidden")
}

func TestReport_UnsupportedFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "report", "-o", "xml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Equal(t, 0, env.provider.Calls())
}

func TestReport_ProviderError(t *testing.T) {
	env := newTestEnv(t)
	env.provider.SetErr(domain.ErrAPIUnavailable)

	_, err := env.run(t, "report")
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
}

func TestReport_SnapshotFileFlag(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	content := `{"tasks":[{"id":7,"title":"Only task","priority":"medium","completed":true,"created_at":"2025-06-14T09:00:00Z"}],"categories":[],"lists":[]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := env.run(t, "report", "--file", path, "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Stats domain.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Stats.Total)
	assert.Equal(t, 1, doc.Stats.Completed)
	assert.Equal(t, 0, env.provider.Calls())
}

func TestReport_SnapshotFileFlagBadExtension(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "report", "--file", "snapshot.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExport_Stdout(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "export")
	require.NoError(t, err)

	assert.Contains(t, out, "Productivity Report,\n")
	assert.Contains(t, out, "Total tasks,2\n")
	assert.Contains(t, out, "Completion rate,50%\n")
	assert.Contains(t, out, "High priority,1\n")
}

func TestExport_Dir(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	out, err := env.run(t, "export", "--dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "productivity_report_2025-06-15.csv")
	assert.Contains(t, out, path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total tasks,2")
}

func TestExport_Output(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "summary.csv")

	_, err := env.run(t, "export", "--output", path, "--lang", "pt-BR")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total de Tarefas,2")
}

func TestExport_Tasks(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "export", "--tasks")
	require.NoError(t, err)

	assert.Contains(t, out, "Title,Description,Priority,Status,Created on\n")
	assert.Contains(t, out, "Pay rent,,high,Pending,2025-06-13\n")
	assert.Contains(t, out, "Read book,,low,Done,2025-06-12\n")
}

func TestExport_TasksDirPortuguese(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	out, err := env.run(t, "export", "-t", "--lang", "pt-BR", "--dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "tarefas_2025-06-15.csv")
	assert.Contains(t, out, path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Título,Descrição,Prioridade,Status,Data de Criação")
	assert.Contains(t, string(content), "Pay rent,,high,Pendente,13/06/2025")
}

func TestExport_ConflictingFlags(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "export", "--output", "a.csv", "--dir", "b")
	assert.Error(t, err)
	assert.Equal(t, 0, env.provider.Calls())
}

func TestSuggestions_List(t *testing.T) {
	env := newTestEnv(t)
	env.store.Items[domain.SuggestionOverdueTasks] = testutil.FixtureNow

	out, err := env.run(t, "suggestions")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, domain.SuggestionOverdueTasks)
	assert.Contains(t, out, domain.SuggestionFocusHighPriority)
	assert.Contains(t, out, "dismissed")
	assert.Contains(t, out, "active")
}

func TestSuggestions_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.provider.Snap = &domain.Snapshot{}

	out, err := env.run(t, "suggestions")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}

func TestDismiss(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "dismiss", domain.SuggestionOverdueTasks, domain.SuggestionBreakDownTasks)
	require.NoError(t, err)

	assert.Contains(t, out, "Dismissed overdue-tasks")
	assert.Contains(t, out, "Dismissed break-down-tasks")
	assert.Contains(t, env.store.Items, domain.SuggestionOverdueTasks)
	assert.Contains(t, env.store.Items, domain.SuggestionBreakDownTasks)
}

func TestDismiss_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "dismiss", "no-such-thing")
	assert.ErrorIs(t, err, domain.ErrSuggestionNotFound)
	assert.Empty(t, env.store.Items)
}

func TestDismiss_RequiresID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "dismiss")
	assert.Error(t, err)
}

func TestRestore(t *testing.T) {
	env := newTestEnv(t, domain.SuggestionOverdueTasks)

	out, err := env.run(t, "restore", domain.SuggestionOverdueTasks)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored overdue-tasks")
	assert.Empty(t, env.store.Items)
}

func TestRestore_NotDismissed(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "restore", domain.SuggestionOverdueTasks)
	assert.ErrorIs(t, err, domain.ErrNotDismissed)
}

func TestRestore_All(t *testing.T) {
	env := newTestEnv(t, domain.SuggestionOverdueTasks, domain.SuggestionOrganizeLists)

	out, err := env.run(t, "restore", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 2 suggestion(s)")
	assert.Empty(t, env.store.Items)
}

func TestRestore_ArgValidation(t *testing.T) {
	env := newTestEnv(t, domain.SuggestionOverdueTasks)

	_, err := env.run(t, "restore")
	assert.Error(t, err)

	_, err = env.run(t, "restore", "--all", domain.SuggestionOverdueTasks)
	assert.Error(t, err)
	assert.Len(t, env.store.Items, 1)
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	env.loader.Config.API.Token = "secret-token"
	env.loader.Config.Warnings = []string{"unknown section: agents"}
	env.manager.ProjectConfigInfo.Exists = true

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "- /work/project/.taskpulse.toml\n")
	assert.Contains(t, out, "- /home/test/.config/taskpulse/config.toml (not found)")
	assert.Contains(t, out, "[Warnings]")
	assert.Contains(t, out, "unknown section: agents")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "base_url")
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, maskedToken)
	assert.NotContains(t, out, "secret-token")
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.True(t, env.manager.InitProjectCalled)
	assert.False(t, env.manager.InitGlobalCalled)
	assert.False(t, env.manager.LastForce)
	assert.Contains(t, out, "/work/project/.taskpulse.toml")
}

func TestConfigInit_GlobalForce(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "config", "init", "--global", "--force")
	require.NoError(t, err)
	assert.True(t, env.manager.InitGlobalCalled)
	assert.True(t, env.manager.LastForce)
}

func TestConfigInit_Exists(t *testing.T) {
	env := newTestEnv(t)
	env.manager.InitProjectErr = domain.ErrConfigExists

	_, err := env.run(t, "config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestWatch_LaunchesTUI(t *testing.T) {
	env := newTestEnv(t)
	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	var got tui.Options
	launchTUIFunc = func(_ context.Context, _ *app.Container, opts tui.Options) error {
		got = opts
		return nil
	}

	_, err := env.run(t, "watch", "--lang", "en", "--all")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.True(t, got.IncludeDismissed)
	assert.Equal(t, domain.DefaultRefreshInterval, got.Interval)
}

func TestWatch_Plain(t *testing.T) {
	env := newTestEnv(t)

	out := env.watchUntilOutput(t, "watch", "--plain", "--interval", "1h")

	assert.Contains(t, out, "[2025-06-15 10:00:00]")
	assert.Contains(t, out, "Total tasks=2")
	assert.Contains(t, out, "Overdue tasks=1")
	assert.Contains(t, out, "Completion rate=50%")
	assert.Contains(t, out, "Suggestions=2")
	assert.Contains(t, out, "Due soon=0")
	assert.Contains(t, out, `! Overdue task: "Pay rent" is overdue (2025-06-14 10:00)`)
}

func TestWriteWatchLine_AlertsPrintedOnce(t *testing.T) {
	due := testutil.FixtureNow.Add(2 * time.Hour)
	report := func(at time.Time) *usecase.BuildReportOutput {
		return &usecase.BuildReportOutput{Report: &domain.Report{
			GeneratedAt: at,
			Language:    domain.LanguageEnglish,
			Alerts: []domain.Alert{
				{ID: "task-3-due", Kind: domain.AlertDueSoon, Title: "Task due soon", Message: `"Ship" is due soon`, DueDate: due},
				{ID: "task-1-overdue", Kind: domain.AlertOverdue, Title: "Overdue task", Message: `"Pay rent" is overdue`, DueDate: testutil.FixtureNow.Add(-time.Hour)},
			},
		}}
	}
	alerts := newAlertLog()

	var first bytes.Buffer
	writeWatchLine(&first, report(testutil.FixtureNow), alerts)
	assert.Contains(t, first.String(), "Due soon=1")
	assert.Contains(t, first.String(), `! Task due soon: "Ship" is due soon (2025-06-15 12:00)`)
	assert.Contains(t, first.String(), `! Overdue task: "Pay rent" is overdue`)

	var second bytes.Buffer
	writeWatchLine(&second, report(testutil.FixtureNow.Add(30*time.Minute)), alerts)
	assert.Contains(t, second.String(), "Due soon=1")
	assert.NotContains(t, second.String(), "!")

	var nextDay bytes.Buffer
	writeWatchLine(&nextDay, report(testutil.FixtureNow.Add(24*time.Hour)), alerts)
	assert.Contains(t, nextDay.String(), `! Overdue task: "Pay rent" is overdue`)
	assert.NotContains(t, nextDay.String(), "Task due soon")
}

func TestWatch_PlainReportsFailures(t *testing.T) {
	env := newTestEnv(t)
	env.provider.SetErr(domain.ErrAPIUnavailable)

	out := env.watchUntilOutput(t, "watch", "--plain", "--interval", "1h")
	assert.Contains(t, out, "refresh failed")
}
