package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/storage/compliance"
)

func TestSQLiteRepository_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (ledger.Repository, func()) {
		repo, err := OpenInMemory()
		require.NoError(t, err)
		return repo, func() { _ = repo.Close() }
	})
}

func TestSQLiteRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")

	repo, err := Open(path)
	require.NoError(t, err)
	rec := domain.NewLedgerRecord("2025-12-22")
	rec.Leaves["bob"] = true
	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.OnLeave("bob"))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
