package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexnie/gentags/internal/history"
)

func seedHistory(t *testing.T, dbPath string) {
	t.Helper()
	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.RecordRun(history.Run{
		StartedAt: time.Now().Add(-time.Hour),
		Dirs:      []string{"src"},
		Types:     []string{"c_cpp"},
		Excludes:  []string{},
		FileCount: 7,
		Status:    history.StatusOK,
	})
	require.NoError(t, err)

	_, err = store.RecordRun(history.Run{
		StartedAt: time.Now(),
		Dirs:      []string{"lib"},
		Types:     []string{"python"},
		Excludes:  []string{},
		Status:    history.StatusFailed,
		Error:     "cscope: exit status 1\ndetails follow",
	})
	require.NoError(t, err)
}

func TestHistoryShowsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	seedHistory(t, dbPath)

	buf := new(bytes.Buffer)
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "--history-db", dbPath})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "dirs: src")
	assert.Contains(t, output, "dirs: lib")
	assert.Contains(t, output, history.StatusFailed)
	// Multi-line tool errors are truncated to their first line.
	assert.Contains(t, output, "error: cscope: exit status 1")
	assert.NotContains(t, output, "details follow")
}

func TestHistoryMissingDatabase(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "--history-db", filepath.Join(t.TempDir(), "none.db")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "No run history found")
}

func TestHistoryClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	seedHistory(t, dbPath)

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"history", "clear", "--history-db", dbPath})
	require.NoError(t, cmd.Execute())

	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
