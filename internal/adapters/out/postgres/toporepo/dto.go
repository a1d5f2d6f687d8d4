// Package toporepo persists the warehouse layout: zones, nodes, and paths.
package toporepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"

	"github.com/lib/pq"
)

// ZoneDTO is the database row of a zone with its rectangular footprint.
type ZoneDTO struct {
	ID       int32 `gorm:"primaryKey;autoIncrement"`
	TenantID int32 `gorm:"index"`
	Name     string
	OriginX  float64
	OriginY  float64
	Width    float64
	Height   float64
}

// TableName overrides GORM's default naming.
func (ZoneDTO) TableName() string {
	return "zones"
}

// NodeDTO is the database row of a node.
type NodeDTO struct {
	ID       int32 `gorm:"primaryKey;autoIncrement"`
	TenantID int32 `gorm:"index"`
	ZoneID   int32 `gorm:"index"`
	Name     string
	Kind     int
	X        float64
	Y        float64
}

// TableName overrides GORM's default naming.
func (NodeDTO) TableName() string {
	return "nodes"
}

// PathDTO is the database row of a path. Waypoints are stored as parallel
// coordinate arrays.
type PathDTO struct {
	ID         int32 `gorm:"primaryKey;autoIncrement"`
	TenantID   int32 `gorm:"index"`
	FromNode   int32 `gorm:"index"`
	ToNode     int32 `gorm:"index"`
	Distance   float64
	WaypointXs pq.Float64Array `gorm:"type:double precision[]"`
	WaypointYs pq.Float64Array `gorm:"type:double precision[]"`
	OneWay     bool
	Status     int
}

// TableName overrides GORM's default naming.
func (PathDTO) TableName() string {
	return "paths"
}

func zoneFromDomain(zone *topology.Zone) ZoneDTO {
	bounds := zone.Bounds()
	return ZoneDTO{
		ID:       zone.ID(),
		TenantID: int32(zone.Tenant()),
		Name:     zone.Name(),
		OriginX:  bounds.Origin().X(),
		OriginY:  bounds.Origin().Y(),
		Width:    bounds.Width(),
		Height:   bounds.Height(),
	}
}

func nodeFromDomain(node *topology.Node) NodeDTO {
	return NodeDTO{
		ID:       node.ID(),
		TenantID: int32(node.Tenant()),
		ZoneID:   node.ZoneID(),
		Name:     node.Name(),
		Kind:     int(node.Kind()),
		X:        node.Position().X(),
		Y:        node.Position().Y(),
	}
}

func nodeToDomain(dto NodeDTO) (*topology.Node, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	position, err := kernel.NewPoint(dto.X, dto.Y)
	if err != nil {
		return nil, err
	}

	return topology.NewNode(dto.ID, tenant, dto.ZoneID, dto.Name,
		topology.NodeKind(dto.Kind), position)
}

func pathFromDomain(path *topology.Path) PathDTO {
	xs := make(pq.Float64Array, 0, len(path.Waypoints()))
	ys := make(pq.Float64Array, 0, len(path.Waypoints()))
	for _, point := range path.Waypoints() {
		xs = append(xs, point.X())
		ys = append(ys, point.Y())
	}

	return PathDTO{
		ID:         path.ID(),
		TenantID:   int32(path.Tenant()),
		FromNode:   path.From(),
		ToNode:     path.To(),
		Distance:   path.Distance(),
		WaypointXs: xs,
		WaypointYs: ys,
		OneWay:     path.IsOneWay(),
		Status:     int(path.Status()),
	}
}

func pathToDomain(dto PathDTO) (*topology.Path, error) {
	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	waypoints := make([]kernel.Point, 0, len(dto.WaypointXs))
	for i := range dto.WaypointXs {
		point, pointErr := kernel.NewPoint(dto.WaypointXs[i], dto.WaypointYs[i])
		if pointErr != nil {
			return nil, pointErr
		}
		waypoints = append(waypoints, point)
	}

	return topology.RestorePath(dto.ID, tenant, dto.FromNode, dto.ToNode,
		dto.Distance, waypoints, dto.OneWay, topology.PathStatus(dto.Status))
}
