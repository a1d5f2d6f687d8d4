// Package inventory models the stock side of the warehouse: catalog stocks,
// received lots, shelf placements, individually barcoded items, and the
// append-only movement ledger that every allocation and release writes to.
//
// Quantities follow two hard rules. A lot's quantity only decreases after
// receipt (corrections create a new lot), and the on-shelf quantity of a
// StockShelf must never go negative; the storage layer enforces the latter
// with a compare-and-swap decrement.
package inventory
