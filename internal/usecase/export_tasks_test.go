package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/testutil"
	"github.com/runoshun/taskpulse/internal/usecase"
)

func newExportTasks(provider domain.SnapshotProvider) (*usecase.ExportTasks, *testutil.MockLogger) {
	logger := &testutil.MockLogger{}
	return usecase.NewExportTasks(provider, &testutil.MockClock{NowTime: testNow}, logger, domain.LanguageEnglish), logger
}

func TestExportTasks_Portuguese(t *testing.T) {
	snap := sampleSnapshot()
	snap.Tasks[0].Description = `Transfer, then "confirm"`
	uc, _ := newExportTasks(testutil.NewMockSnapshotProvider(snap))

	var buf bytes.Buffer
	out, err := uc.Execute(context.Background(), usecase.ExportTasksInput{
		Writer:   &buf,
		Language: domain.LanguagePortuguese,
	})

	require.NoError(t, err)
	assert.Equal(t, "tarefas_2025-06-15.csv", out.FileName)
	assert.Equal(t, 2, out.Tasks)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Título", "Descrição", "Prioridade", "Status", "Data de Criação"}, rows[0])
	assert.Equal(t, []string{"Pay rent", `Transfer, then "confirm"`, "high", "Pendente", "13/06/2025"}, rows[1])
	assert.Equal(t, []string{"Read book", "", "low", "Concluída", "12/06/2025"}, rows[2])
}

func TestExportTasks_English(t *testing.T) {
	uc, logger := newExportTasks(testutil.NewMockSnapshotProvider(sampleSnapshot()))

	var buf bytes.Buffer
	out, err := uc.Execute(context.Background(), usecase.ExportTasksInput{Writer: &buf})

	require.NoError(t, err)
	assert.Equal(t, "tasks_2025-06-15.csv", out.FileName)
	assert.Contains(t, buf.String(), "Title,Description,Priority,Status,Created on\n")
	assert.Contains(t, buf.String(), "Read book,,low,Done,2025-06-12\n")
	assert.NotEmpty(t, logger.Entries)
}

func TestExportTasks_EmptySnapshot(t *testing.T) {
	uc, _ := newExportTasks(testutil.NewMockSnapshotProvider(&domain.Snapshot{}))

	var buf bytes.Buffer
	out, err := uc.Execute(context.Background(), usecase.ExportTasksInput{Writer: &buf})

	require.NoError(t, err)
	assert.Zero(t, out.Tasks)
	assert.Equal(t, "Title,Description,Priority,Status,Created on\n", buf.String())
}

func TestExportTasks_ProviderError(t *testing.T) {
	provider := testutil.NewMockSnapshotProvider(nil)
	provider.Err = domain.ErrUnauthorized
	uc, _ := newExportTasks(provider)

	var buf bytes.Buffer
	_, err := uc.Execute(context.Background(), usecase.ExportTasksInput{Writer: &buf})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, buf.Len())
}
