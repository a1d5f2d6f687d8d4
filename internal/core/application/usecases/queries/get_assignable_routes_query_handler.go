package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignableRoutesQueryHandler retrieves the claimable route listing with
// direct SQL, bypassing the aggregate repositories for read performance.
type GetAssignableRoutesQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignableRoutesQueryHandler creates a handler for the route listing.
func NewGetAssignableRoutesQueryHandler(db *gorm.DB) GetAssignableRoutesQueryHandler {
	return GetAssignableRoutesQueryHandler{db: db}
}

// Handle executes the query. Routes are ordered shortest first so pickers
// drain quick routes before long ones.
func (h GetAssignableRoutesQueryHandler) Handle(
	ctx context.Context,
	query GetAssignableRoutesQuery,
) ([]GetAssignableRoutesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	routes := make([]GetAssignableRoutesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.plan_id,
			r.depend_id,
			COALESCE(array_length(r.stops, 1), 0),
			r.distance,
			r.version
		FROM picking_routes r
		WHERE r.tenant_id = ?
		  AND r.status = ?
		  AND (r.depend_id IS NULL OR EXISTS (
			SELECT 1 FROM picking_routes d
			WHERE d.id = r.depend_id AND d.status = ?
		  ))
		ORDER BY r.distance, r.id
	`, query.Tenant(), picking.RouteStatusPending, picking.RouteStatusCompleted).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var route GetAssignableRoutesQueryResponse
		var id uuid.UUID
		var planID uuid.UUID
		var dependID uuid.NullUUID
		var version int64

		err = rows.Scan(
			&id,
			&planID,
			&dependID,
			&route.Stops,
			&route.Distance,
			&version,
		)
		if err != nil {
			return nil, err
		}

		routeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		route.RouteID = routeID

		ownerID, idErr := kernel.UUIDFromBytes(planID[:])
		if idErr != nil {
			return nil, idErr
		}
		route.PlanID = ownerID

		if dependID.Valid {
			depend, idErr := kernel.UUIDFromBytes(dependID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			route.DependID = &depend
		}

		listed, verErr := kernel.NewVersion(version)
		if verErr != nil {
			return nil, verErr
		}
		route.Version = listed

		routes = append(routes, route)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}
