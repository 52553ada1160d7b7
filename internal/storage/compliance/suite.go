// Package compliance is a shared contract test for ledger repositories.
package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/domain"
)

// RunRepositoryComplianceTest runs the standard ledger repository checks.
// setup returns a fresh, empty repository and a cleanup function.
func RunRepositoryComplianceTest(t *testing.T, setup func() (ledger.Repository, func())) {
	submittedAt := time.Date(2025, 12, 22, 9, 30, 0, 0, time.UTC)

	t.Run("LoadEmptyReturnsNil", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		rec, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		rec := domain.NewLedgerRecord("2025-12-22")
		rec.DocumentID = "page-1"
		rec.Submissions["alice"] = domain.Submission{Submitted: true, SubmittedAt: submittedAt}
		rec.Leaves["bob"] = true
		rec.Leaves["carol"] = false
		require.NoError(t, repo.Save(ctx, rec))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.Equal(t, "2025-12-22", loaded.PeriodKey)
		assert.Equal(t, "page-1", loaded.DocumentID)
		require.Contains(t, loaded.Submissions, "alice")
		assert.True(t, loaded.Submissions["alice"].Submitted)
		assert.True(t, submittedAt.Equal(loaded.Submissions["alice"].SubmittedAt))
		assert.Equal(t, map[string]bool{"bob": true, "carol": false}, loaded.Leaves)
	})

	t.Run("SaveOverwritesWholesale", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		old := domain.NewLedgerRecord("2025-12-15")
		old.DocumentID = "page-old"
		old.Submissions["alice"] = domain.Submission{Submitted: true, SubmittedAt: submittedAt}
		old.Leaves["bob"] = true
		require.NoError(t, repo.Save(ctx, old))

		fresh := domain.NewLedgerRecord("2025-12-22")
		fresh.Leaves["dave"] = true
		require.NoError(t, repo.Save(ctx, fresh))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.Equal(t, "2025-12-22", loaded.PeriodKey)
		assert.Empty(t, loaded.DocumentID)
		assert.Empty(t, loaded.Submissions)
		assert.Equal(t, map[string]bool{"dave": true}, loaded.Leaves)
	})

	t.Run("LoadedRecordIsIndependent", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, repo.Save(ctx, domain.NewLedgerRecord("2025-12-22")))

		first, err := repo.Load(ctx)
		require.NoError(t, err)
		first.Leaves["mallory"] = true
		first.Submissions["mallory"] = domain.Submission{Submitted: true}

		second, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, second.Leaves, "mallory")
		assert.NotContains(t, second.Submissions, "mallory")
	})

	t.Run("LoadedMapsAreNeverNil", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, repo.Save(ctx, &domain.LedgerRecord{PeriodKey: "2025-12-22"}))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, loaded.Submissions)
		assert.NotNil(t, loaded.Leaves)
	})

	t.Run("WorksWithLedgerService", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()
		now := submittedAt

		svc := ledger.NewService(repo, clock.Fixed(now))
		_, err := svc.MarkSubmitted(ctx, "alice", "page-1")
		require.NoError(t, err)

		_, err = svc.MarkSubmitted(ctx, "alice", "page-1")
		assert.ErrorIs(t, err, domain.ErrConflict)

		rec, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.True(t, rec.IsSubmitted("alice"))
	})
}
