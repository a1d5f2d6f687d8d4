package services

import (
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/sale"

	"github.com/shopspring/decimal"
)

// Allocation is the planned outcome of reserving inventory for one sale: the
// withdrawals to execute and the summed cost price of the drawn units.
type Allocation struct {
	Draws     []inventory.Draw
	CostPrice decimal.Decimal
}

// Allocator plans first-in-first-out inventory reservations. It drains the
// oldest lots first, ordered by entry date, splitting a line across shelves
// when no single lot covers it. Planning is all-or-nothing: a shortfall on
// any line fails the whole allocation and mutates nothing.
type Allocator struct{}

// NewAllocator creates the allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Plan computes the withdrawals for every sale line from the given
// availability slices, keyed by stock. It draws from the lots in FIFO order
// and fails with inventory.ErrInsufficientInventory when the total available
// quantity of any stock is less than requested.
func (a *Allocator) Plan(lines []sale.Line, available map[int32][]inventory.Availability) (Allocation, error) {
	var draws []inventory.Draw
	total := decimal.Zero

	for _, line := range lines {
		slices := append([]inventory.Availability(nil), available[line.StockID]...)
		sort.SliceStable(slices, func(i, j int) bool {
			return slices[i].Lot.EntryDate().Before(slices[j].Lot.EntryDate())
		})

		remaining := line.Quantity
		for _, s := range slices {
			if remaining == 0 {
				break
			}
			if !s.Lot.IsAllocatable() || s.Quantity <= 0 {
				continue
			}

			take := remaining
			if s.Quantity < take {
				take = s.Quantity
			}

			draws = append(draws, inventory.Draw{
				StockID:  line.StockID,
				LotID:    s.Lot.ID(),
				ShelfID:  s.ShelfID,
				NodeID:   s.NodeID,
				Quantity: take,
			})
			total = total.Add(s.Lot.CostPrice().Mul(decimal.NewFromInt(int64(take))))
			remaining -= take
		}

		if remaining > 0 {
			return Allocation{}, fmt.Errorf(
				"stock %d short by %d of %d requested: %w",
				line.StockID, remaining, line.Quantity, inventory.ErrInsufficientInventory)
		}
	}

	return Allocation{Draws: draws, CostPrice: total}, nil
}
