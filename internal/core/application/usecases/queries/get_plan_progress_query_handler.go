package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPlanProgressQueryHandler reads a plan's status and per-good pick counts
// with direct SQL.
type GetPlanProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetPlanProgressQueryHandler creates a handler for plan progress queries.
func NewGetPlanProgressQueryHandler(db *gorm.DB) GetPlanProgressQueryHandler {
	return GetPlanProgressQueryHandler{db: db}
}

// Handle executes the query.
func (h GetPlanProgressQueryHandler) Handle(
	ctx context.Context,
	query GetPlanProgressQuery,
) (GetPlanProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlanProgressQueryResponse{}, err
	}

	response := GetPlanProgressQueryResponse{
		PlanID: query.PlanID(),
		Goods:  make([]GoodProgress, 0),
	}

	var status int
	var version int64
	row := h.db.WithContext(ctx).Raw(`
		SELECT status, version
		FROM picking_plans
		WHERE tenant_id = ? AND id = ?
	`, query.Tenant(), query.PlanID().Bytes()).Row()
	if err := row.Scan(&status, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetPlanProgressQueryResponse{},
				errs.NewObjectNotFoundError("plan", query.PlanID().String())
		}
		return GetPlanProgressQueryResponse{}, err
	}

	response.Status = picking.PlanStatus(status)
	v, err := kernel.NewVersion(version)
	if err != nil {
		return GetPlanProgressQueryResponse{}, err
	}
	response.Version = v

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			g.sale_id,
			g.ready_to_pack,
			COUNT(p.id),
			COUNT(p.id) FILTER (WHERE p.picked)
		FROM picking_goods g
		LEFT JOIN pick_items p ON p.good_id = g.id
		WHERE g.tenant_id = ? AND g.plan_id = ?
		GROUP BY g.sale_id, g.ready_to_pack
		ORDER BY g.sale_id
	`, query.Tenant(), query.PlanID().Bytes()).Rows()
	if err != nil {
		return GetPlanProgressQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var good GoodProgress
		var saleID uuid.UUID

		if err = rows.Scan(&saleID, &good.ReadyToPack, &good.ItemsTotal, &good.ItemsPicked); err != nil {
			return GetPlanProgressQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(saleID[:])
		if idErr != nil {
			return GetPlanProgressQueryResponse{}, idErr
		}
		good.SaleID = id

		response.Goods = append(response.Goods, good)
	}

	if err = rows.Err(); err != nil {
		return GetPlanProgressQueryResponse{}, err
	}

	return response, nil
}
