package inventory_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTenant = kernel.TenantID(1)

func mustLot(t *testing.T, quantity int32) *inventory.Lot {
	t.Helper()
	lot, err := inventory.NewLot(1, testTenant, 7, "LOT-001", quantity,
		"acme", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), nil, decimal.NewFromFloat(2.50))
	require.NoError(t, err)
	return lot
}

func TestLot_Draw(t *testing.T) {
	t.Run("draw_reduces_quantity", func(t *testing.T) {
		lot := mustLot(t, 10)

		require.NoError(t, lot.Draw(4))

		assert.Equal(t, int32(6), lot.Quantity())
		assert.Equal(t, inventory.LotStatusAvailable, lot.Status())
	})

	t.Run("draining_the_lot_depletes_it", func(t *testing.T) {
		lot := mustLot(t, 10)

		require.NoError(t, lot.Draw(10))

		assert.Equal(t, int32(0), lot.Quantity())
		assert.Equal(t, inventory.LotStatusDepleted, lot.Status())
		assert.False(t, lot.IsAllocatable())
	})

	t.Run("overdraw_fails_without_mutation", func(t *testing.T) {
		lot := mustLot(t, 5)

		err := lot.Draw(6)

		require.ErrorIs(t, err, inventory.ErrInsufficientInventory)
		assert.Equal(t, int32(5), lot.Quantity())
	})

	t.Run("expired_lot_is_not_allocatable", func(t *testing.T) {
		lot := mustLot(t, 5)
		lot.Expire()

		err := lot.Draw(1)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("restore_reopens_a_depleted_lot", func(t *testing.T) {
		lot := mustLot(t, 3)
		require.NoError(t, lot.Draw(3))

		require.NoError(t, lot.Restore(3))

		assert.Equal(t, int32(3), lot.Quantity())
		assert.True(t, lot.IsAllocatable())
	})
}

func TestNewLot_Validation(t *testing.T) {
	entry := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("negative_quantity_fails", func(t *testing.T) {
		_, err := inventory.NewLot(1, testTenant, 7, "LOT-001", -1, "acme", entry, nil, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing_lot_number_fails", func(t *testing.T) {
		_, err := inventory.NewLot(1, testTenant, 7, "", 1, "acme", entry, nil, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative_cost_price_fails", func(t *testing.T) {
		_, err := inventory.NewLot(1, testTenant, 7, "LOT-001", 1, "acme", entry, nil, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStockShelf_Decrement(t *testing.T) {
	t.Run("decrement_never_goes_negative", func(t *testing.T) {
		ss, err := inventory.NewStockShelf(testTenant, 2, 7, 3)
		require.NoError(t, err)

		err = ss.Decrement(4)

		require.ErrorIs(t, err, inventory.ErrInsufficientInventory)
		assert.Equal(t, int32(3), ss.Quantity())
	})

	t.Run("increment_then_decrement_round_trips", func(t *testing.T) {
		ss, err := inventory.NewStockShelf(testTenant, 2, 7, 0)
		require.NoError(t, err)

		require.NoError(t, ss.Increment(5))
		require.NoError(t, ss.Decrement(5))

		assert.Equal(t, int32(0), ss.Quantity())
	})
}

func TestItem_Lifecycle(t *testing.T) {
	newItem := func(t *testing.T) *inventory.Item {
		t.Helper()
		item, err := inventory.NewItem(1, testTenant, 7, 1, 2, "4006381333931", decimal.NewFromFloat(2.50))
		require.NoError(t, err)
		return item
	}

	t.Run("reserve_pick_ship_happy_path", func(t *testing.T) {
		item := newItem(t)

		require.NoError(t, item.Reserve())
		require.NoError(t, item.MarkPicked())
		require.NoError(t, item.MarkShipped())

		assert.Equal(t, inventory.ItemStatusShipped, item.Status())
	})

	t.Run("release_returns_reserved_item_to_stock", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.Reserve())

		require.NoError(t, item.Release())

		assert.Equal(t, inventory.ItemStatusInStock, item.Status())
	})

	t.Run("picked_item_cannot_be_released", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.Reserve())
		require.NoError(t, item.MarkPicked())

		err := item.Release()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, inventory.ItemStatusPicked, item.Status())
	})

	t.Run("shipped_item_cannot_expire", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.Reserve())
		require.NoError(t, item.MarkPicked())
		require.NoError(t, item.MarkShipped())

		err := item.Expire()

		require.ErrorIs(t, err, errs.ErrTerminalState)
	})

	t.Run("double_reserve_fails", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.Reserve())

		err := item.Reserve()

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStockEntry(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("allocation_requires_a_sale", func(t *testing.T) {
		_, err := inventory.NewStockEntry(testTenant, 7, 1, 2,
			inventory.MovementKindAllocation, 3, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("signed_quantities_sum_to_stock_on_hand", func(t *testing.T) {
		saleID := kernel.NewUUID()

		receipt, err := inventory.NewStockEntry(testTenant, 7, 1, 2,
			inventory.MovementKindReceipt, 10, nil, now)
		require.NoError(t, err)
		alloc, err := inventory.NewStockEntry(testTenant, 7, 1, 2,
			inventory.MovementKindAllocation, 4, &saleID, now)
		require.NoError(t, err)
		release, err := inventory.NewStockEntry(testTenant, 7, 1, 2,
			inventory.MovementKindRelease, 1, &saleID, now)
		require.NoError(t, err)

		assert.Equal(t, int32(7), receipt.Signed()+alloc.Signed()+release.Signed())
	})
}
