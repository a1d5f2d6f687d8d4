// Package picking models the orchestration side of fulfillment: the
// PickingPlan aggregate grouping sales into one picking run, the per-sale
// goods with their readiness flag, and the PickingRoute aggregate a picker
// claims and walks.
//
// Plans and routes use the same optimistic-concurrency primitive as sales:
// transitions name the version the caller last read, accepted transitions
// advance the version by one and buffer exactly one ledger event.
package picking
