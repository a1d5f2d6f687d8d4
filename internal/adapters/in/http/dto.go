package http

import "time"

// Error is the JSON error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IDResponse returns the identifier of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// IDsResponse returns the identifiers of created resources.
type IDsResponse struct {
	IDs []string `json:"ids"`
}

// CreateSaleRequest is the body of POST /api/v1/sales.
type CreateSaleRequest struct {
	OrderRef string            `json:"order_ref"`
	Lines    []SaleLineRequest `json:"lines"`
}

// SaleLineRequest is one requested position of a sale.
type SaleLineRequest struct {
	StockID  int32 `json:"stock_id"`
	Quantity int32 `json:"quantity"`
}

// SaleHistoryEntry is one ledger row of GET /api/v1/sales/:id/history.
type SaleHistoryEntry struct {
	Version   int64     `json:"version"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SchedulePlanRequest is the body of POST /api/v1/plans.
type SchedulePlanRequest struct {
	SaleIDs []string `json:"sale_ids"`
	ZoneIDs []int32  `json:"zone_ids"`
}

// ComputeRoutesRequest is the body of POST /api/v1/plans/:id/routes.
type ComputeRoutesRequest struct {
	StartNode int32 `json:"start_node"`
}

// PlanProgressResponse is the body of GET /api/v1/plans/:id/progress.
type PlanProgressResponse struct {
	PlanID  string                 `json:"plan_id"`
	Status  string                 `json:"status"`
	Version int64                  `json:"version"`
	Goods   []GoodProgressResponse `json:"goods"`
}

// GoodProgressResponse is the picking progress of one sale inside a plan.
type GoodProgressResponse struct {
	SaleID      string `json:"sale_id"`
	ReadyToPack bool   `json:"ready_to_pack"`
	ItemsTotal  int    `json:"items_total"`
	ItemsPicked int    `json:"items_picked"`
}

// AssignableRouteResponse is one row of GET /api/v1/routes/assignable.
type AssignableRouteResponse struct {
	RouteID  string  `json:"route_id"`
	PlanID   string  `json:"plan_id"`
	DependID *string `json:"depend_id,omitempty"`
	Stops    int     `json:"stops"`
	Distance float64 `json:"distance"`
	Version  int64   `json:"version"`
}

// ClaimRouteRequest is the body of POST /api/v1/routes/:id/claim.
type ClaimRouteRequest struct {
	Assignee string `json:"assignee"`
	Version  int64  `json:"version"`
}

// ReportStepRequest is the body of POST /api/v1/routes/:id/steps.
type ReportStepRequest struct {
	NodeID  int32 `json:"node_id"`
	Version int64 `json:"version"`
}

// CompleteRouteRequest is the body of POST /api/v1/routes/:id/complete.
type CompleteRouteRequest struct {
	Version int64 `json:"version"`
}

// CreateStockRequest is the body of POST /api/v1/stocks.
type CreateStockRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// CreateShelfRequest is the body of POST /api/v1/shelves.
type CreateShelfRequest struct {
	ZoneID int32  `json:"zone_id"`
	NodeID int32  `json:"node_id"`
	Name   string `json:"name"`
}

// ShelfPublicationRequest is the body of PUT /api/v1/shelves/:id/publication.
type ShelfPublicationRequest struct {
	Published bool `json:"published"`
}

// ReceiveLotRequest is the body of POST /api/v1/lots. The cost price travels
// as a decimal string to avoid float rounding.
type ReceiveLotRequest struct {
	StockID   int32      `json:"stock_id"`
	ShelfID   int32      `json:"shelf_id"`
	LotNumber string     `json:"lot_number"`
	Quantity  int32      `json:"quantity"`
	Supplier  string     `json:"supplier"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	CostPrice string     `json:"cost_price"`
	Barcodes  []string   `json:"barcodes"`
}

// ExpiringLotResponse is one row of GET /api/v1/lots/expiring.
type ExpiringLotResponse struct {
	LotID     int32     `json:"lot_id"`
	StockID   int32     `json:"stock_id"`
	LotNumber string    `json:"lot_number"`
	Quantity  int32     `json:"quantity"`
	Supplier  string    `json:"supplier"`
	Expiry    time.Time `json:"expiry"`
	CostPrice string    `json:"cost_price"`
}

// CreateZoneRequest is the body of POST /api/v1/zones.
type CreateZoneRequest struct {
	Name    string  `json:"name"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// CreateNodeRequest is the body of POST /api/v1/nodes.
type CreateNodeRequest struct {
	ZoneID int32   `json:"zone_id"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// MoveNodeRequest is the body of PUT /api/v1/nodes/:id/position.
type MoveNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointRequest is one waypoint of a path.
type PointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AddPathRequest is the body of POST /api/v1/paths.
type AddPathRequest struct {
	FromNode  int32          `json:"from_node"`
	ToNode    int32          `json:"to_node"`
	Distance  float64        `json:"distance"`
	Waypoints []PointRequest `json:"waypoints,omitempty"`
	OneWay    bool           `json:"one_way"`
}
