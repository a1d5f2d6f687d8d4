package toporepo

import (
	"context"
	"errors"
	"strconv"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTopologyRepository implements ports.TopologyRepository using GORM.
type GormTopologyRepository struct {
	db *gorm.DB
}

// NewGormTopologyRepository creates a new GORM topology repository.
func NewGormTopologyRepository(db *gorm.DB) *GormTopologyRepository {
	return &GormTopologyRepository{db: db}
}

// AddZone persists a new zone.
func (r *GormTopologyRepository) AddZone(ctx context.Context, zone *topology.Zone) error {
	dto := zoneFromDomain(zone)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddNode persists a new node.
func (r *GormTopologyRepository) AddNode(ctx context.Context, node *topology.Node) error {
	dto := nodeFromDomain(node)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateNode persists a moved node.
func (r *GormTopologyRepository) UpdateNode(ctx context.Context, node *topology.Node) error {
	dto := nodeFromDomain(node)
	return r.db.WithContext(ctx).Model(&NodeDTO{}).
		Where("id = ?", dto.ID).
		Select("Name", "X", "Y").
		Updates(&dto).Error
}

// GetNode retrieves a node by id within a tenant.
func (r *GormTopologyRepository) GetNode(ctx context.Context, tenant kernel.TenantID, id int32) (*topology.Node, error) {
	var dto NodeDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("node", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return nodeToDomain(dto)
}

// AddPath persists a new path.
func (r *GormTopologyRepository) AddPath(ctx context.Context, path *topology.Path) error {
	dto := pathFromDomain(path)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdatePath persists a blocked or unblocked path.
func (r *GormTopologyRepository) UpdatePath(ctx context.Context, path *topology.Path) error {
	dto := pathFromDomain(path)
	return r.db.WithContext(ctx).Model(&PathDTO{}).
		Where("id = ?", dto.ID).
		Select("Status").
		Updates(&dto).Error
}

// GetPath retrieves a path by id within a tenant.
func (r *GormTopologyRepository) GetPath(ctx context.Context, tenant kernel.TenantID, id int32) (*topology.Path, error) {
	var dto PathDTO
	err := r.db.WithContext(ctx).First(&dto, "tenant_id = ? AND id = ?", tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("path", strconv.Itoa(int(id)))
		}
		return nil, err
	}
	return pathToDomain(dto)
}

// GetGraph loads the full topology of a tenant as an immutable snapshot.
func (r *GormTopologyRepository) GetGraph(ctx context.Context, tenant kernel.TenantID) (*topology.Graph, error) {
	var nodeDTOs []NodeDTO
	if err := r.db.WithContext(ctx).Find(&nodeDTOs, "tenant_id = ?", tenant).Error; err != nil {
		return nil, err
	}

	var pathDTOs []PathDTO
	if err := r.db.WithContext(ctx).Find(&pathDTOs, "tenant_id = ?", tenant).Error; err != nil {
		return nil, err
	}

	nodes := make([]*topology.Node, 0, len(nodeDTOs))
	for _, dto := range nodeDTOs {
		node, err := nodeToDomain(dto)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	paths := make([]*topology.Path, 0, len(pathDTOs))
	for _, dto := range pathDTOs {
		path, err := pathToDomain(dto)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return topology.NewGraph(nodes, paths)
}
