package inventory

// Availability is one shelf-and-lot slice of allocatable quantity for a stock,
// as read by the allocation planner. Slices arrive ordered by lot entry date
// so the planner can drain them first-in-first-out.
type Availability struct {
	Lot      *Lot
	ShelfID  int32
	NodeID   int32
	Quantity int32
}

// Draw is one planned withdrawal produced by allocation: take Quantity of the
// stock from the given lot on the given shelf.
type Draw struct {
	StockID  int32
	LotID    int32
	ShelfID  int32
	NodeID   int32
	Quantity int32
}
