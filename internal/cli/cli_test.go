package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/config"
	"github.com/rezkam/weekly/internal/domain"
)

var wednesday = time.Date(2025, 12, 24, 15, 0, 0, 0, time.UTC)

func execute(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	if deps.Clock == nil {
		deps.Clock = clock.Fixed(wednesday)
	}
	var out bytes.Buffer
	root := NewRootCommand(deps, "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPeriod(t *testing.T) {
	t.Run("current week", func(t *testing.T) {
		out, err := execute(t, Deps{}, "period")
		require.NoError(t, err)
		assert.Equal(t, "period: 2025-12-22\nlast week: 12/15 ~ 12/21\n", out)
	})

	t.Run("explicit date", func(t *testing.T) {
		out, err := execute(t, Deps{}, "period", "--at", "2026-01-01")
		require.NoError(t, err)
		assert.Equal(t, "period: 2025-12-29\nlast week: 12/22 ~ 12/28\n", out)
	})

	t.Run("timezone shifts the week", func(t *testing.T) {
		sundayNightUTC := time.Date(2025, 12, 28, 20, 0, 0, 0, time.UTC)
		out, err := execute(t, Deps{Clock: clock.Fixed(sundayNightUTC)}, "period", "--tz", "Asia/Shanghai")
		require.NoError(t, err)
		assert.Contains(t, out, "period: 2025-12-29")
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := execute(t, Deps{}, "period", "--at", "24/12/2025")
		assert.ErrorContains(t, err, "invalid --at date")
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRender(t *testing.T) {
	set := domain.TaskSet{
		RecentlyDone: []domain.Task{{ID: "t1", Title: "Fix login", Status: domain.TaskStatusDone}},
	}
	data, err := json.Marshal(set)
	require.NoError(t, err)
	path := writeFile(t, "tasks.json", string(data))

	t.Run("report only", func(t *testing.T) {
		out, err := execute(t, Deps{}, "render", "--tasks", path)
		require.NoError(t, err)

		assert.Contains(t, out, "### 1. Completed Last Week\n\na. Fix login ✅\n")
		assert.NotContains(t, out, "[numbered_item]")
	})

	t.Run("with tree", func(t *testing.T) {
		out, err := execute(t, Deps{}, "render", "--tasks", path, "--tree", "--info", "on call next week")
		require.NoError(t, err)

		assert.Contains(t, out, "[numbered_item] Completed Last Week\n  [bullet_item] Fix login ✅\n")
		assert.Contains(t, out, "[numbered_item] Info Sync / Issues / Learning\n  [bullet_item] on call next week\n")
	})

	t.Run("tasks flag is required", func(t *testing.T) {
		_, err := execute(t, Deps{}, "render")
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := execute(t, Deps{}, "render", "--tasks", writeFile(t, "bad.json", "{"))
		assert.ErrorContains(t, err, "failed to decode tasks")
	})
}

func TestRoster(t *testing.T) {
	path := writeFile(t, "roster.yaml", "members:\n  - id: alice\n    name: Alice\n  - id: bob\n")

	out, err := execute(t, Deps{}, "roster", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "1. Alice (alice)\n2. bob (bob)\n", out)

	_, err = execute(t, Deps{}, "roster", "--file", writeFile(t, "dup.yaml", "members:\n  - id: a\n  - id: a\n"))
	assert.ErrorContains(t, err, "duplicate roster member id")
}

func TestLedgerShow(t *testing.T) {
	t.Run("empty record for the current period", func(t *testing.T) {
		deps := Deps{LoadLedgerConfig: func() (LedgerSettings, error) {
			return LedgerSettings{Ledger: config.LedgerConfig{Backend: config.LedgerMemory}}, nil
		}}

		out, err := execute(t, deps, "ledger", "show")
		require.NoError(t, err)

		var rec domain.LedgerRecord
		require.NoError(t, json.Unmarshal([]byte(out), &rec))
		assert.Equal(t, "2025-12-22", rec.PeriodKey)
		assert.Empty(t, rec.Submissions)
	})

	t.Run("config error", func(t *testing.T) {
		deps := Deps{LoadLedgerConfig: func() (LedgerSettings, error) {
			return LedgerSettings{}, errors.New("bad env")
		}}
		_, err := execute(t, deps, "ledger", "show")
		assert.EqualError(t, err, "bad env")
	})
}
