package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	t.Run("accepts_initial_and_later_versions", func(t *testing.T) {
		for _, raw := range []int64{1, 2, 42} {
			v, err := kernel.NewVersion(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, v.Int64())
		}
	})

	t.Run("rejects_zero_and_negative_versions", func(t *testing.T) {
		for _, raw := range []int64{0, -1} {
			_, err := kernel.NewVersion(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		}
	})
}

func TestVersion_Next(t *testing.T) {
	t.Run("increments_by_exactly_one", func(t *testing.T) {
		assert.Equal(t, kernel.Version(2), kernel.InitialVersion.Next())
		assert.Equal(t, kernel.Version(8), kernel.Version(7).Next())
	})
}

func TestVersion_Propose(t *testing.T) {
	t.Run("matching_expectation_yields_successor", func(t *testing.T) {
		// Given
		current := kernel.Version(3)

		// When
		next, err := current.Propose(kernel.Version(3))

		// Then
		require.NoError(t, err)
		assert.Equal(t, kernel.Version(4), next)
	})

	t.Run("stale_expectation_fails_with_version_conflict", func(t *testing.T) {
		// Given: another writer advanced the aggregate to version 5
		current := kernel.Version(5)

		// When: we propose against the version we read earlier
		_, err := current.Propose(kernel.Version(4))

		// Then
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrVersionConflict)
	})

	t.Run("future_expectation_also_conflicts", func(t *testing.T) {
		_, err := kernel.Version(2).Propose(kernel.Version(7))
		require.ErrorIs(t, err, errs.ErrVersionConflict)
	})

	t.Run("invalid_expectation_is_rejected_before_comparison", func(t *testing.T) {
		_, err := kernel.Version(2).Propose(kernel.Version(0))
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestVersion_SequenceHasNoGaps(t *testing.T) {
	// Accepted proposals applied in order produce exactly 1,2,3,... with no
	// gaps and no duplicates.
	current := kernel.InitialVersion
	for i := int64(1); i < 10; i++ {
		require.Equal(t, i, current.Int64())

		next, err := current.Propose(current)
		require.NoError(t, err)
		require.Equal(t, current.Int64()+1, next.Int64())
		current = next
	}
}
