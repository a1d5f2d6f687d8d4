package sale_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTenant = kernel.TenantID(1)
	testTime   = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testLines  = []sale.Line{{StockID: 7, Quantity: 2}}
)

func newSale(t *testing.T) *sale.Sale {
	t.Helper()
	s, err := sale.NewSale(testTenant, "ORD-1001", testLines, testTime)
	require.NoError(t, err)
	return s
}

func TestNewSale(t *testing.T) {
	t.Run("starts_created_at_initial_version_with_creation_event", func(t *testing.T) {
		s := newSale(t)

		assert.Equal(t, sale.StatusCreated, s.Status())
		assert.Equal(t, kernel.InitialVersion, s.Version())
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, sale.StatusCreated, s.PendingEvents()[0].Status())
		assert.Equal(t, kernel.InitialVersion, s.PendingEvents()[0].Version())
	})

	t.Run("requires_lines", func(t *testing.T) {
		_, err := sale.NewSale(testTenant, "ORD-1001", nil, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := sale.NewSale(testTenant, "ORD-1001", []sale.Line{{StockID: 7, Quantity: 0}}, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSale_Propose(t *testing.T) {
	t.Run("each_transition_bumps_version_by_one_and_buffers_one_event", func(t *testing.T) {
		s := newSale(t)

		require.NoError(t, s.Allocate(1, decimal.NewFromFloat(5.00), testTime))
		require.NoError(t, s.AssignPicking(2, testTime))
		require.NoError(t, s.MarkPicked(3, testTime))
		require.NoError(t, s.MarkPacked(4, testTime))
		require.NoError(t, s.Ship(5, testTime))

		assert.Equal(t, sale.StatusShipped, s.Status())
		assert.Equal(t, kernel.Version(6), s.Version())

		// Creation plus five transitions, gapless versions.
		events := s.PendingEvents()
		require.Len(t, events, 6)
		for i, e := range events {
			assert.Equal(t, kernel.InitialVersion+kernel.Version(i), e.Version())
		}
	})

	t.Run("stale_expected_version_conflicts_without_mutation", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.Allocate(1, decimal.Zero, testTime))

		err := s.AssignPicking(1, testTime)

		require.ErrorIs(t, err, errs.ErrVersionConflict)
		assert.Equal(t, sale.StatusAllocated, s.Status())
		assert.Equal(t, kernel.Version(2), s.Version())
	})

	t.Run("skipping_a_state_is_rejected", func(t *testing.T) {
		s := newSale(t)

		err := s.MarkPicked(1, testTime)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("cancel_is_reachable_from_any_non_terminal_state", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.Allocate(1, decimal.Zero, testTime))
		require.NoError(t, s.AssignPicking(2, testTime))

		require.NoError(t, s.Cancel(3, testTime))

		assert.Equal(t, sale.StatusCancelled, s.Status())
	})

	t.Run("terminal_state_rejects_everything", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.Cancel(1, testTime))

		err := s.Allocate(2, decimal.Zero, testTime)
		require.ErrorIs(t, err, errs.ErrTerminalState)

		err = s.Cancel(2, testTime)
		require.ErrorIs(t, err, errs.ErrTerminalState)
	})
}

func TestReplay(t *testing.T) {
	t.Run("replaying_the_stream_reconstructs_status_and_version", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.Allocate(1, decimal.NewFromFloat(5.00), testTime))
		require.NoError(t, s.AssignPicking(2, testTime))

		replayed, err := sale.Replay(testTenant, s.OrderRef(), s.Lines(), s.CostPrice(), s.PendingEvents())
		require.NoError(t, err)

		assert.True(t, replayed.ID().IsEqual(s.ID()))
		assert.Equal(t, s.Status(), replayed.Status())
		assert.Equal(t, s.Version(), replayed.Version())
	})

	t.Run("a_gap_in_the_stream_is_rejected", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.Allocate(1, decimal.Zero, testTime))
		require.NoError(t, s.AssignPicking(2, testTime))

		events := s.PendingEvents()
		gapped := []sale.Event{events[0], events[2]}

		_, err := sale.Replay(testTenant, s.OrderRef(), s.Lines(), s.CostPrice(), gapped)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("empty_stream_is_rejected", func(t *testing.T) {
		_, err := sale.Replay(testTenant, "ORD-1001", testLines, decimal.Zero, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
