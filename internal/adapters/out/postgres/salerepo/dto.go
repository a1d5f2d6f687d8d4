// Package salerepo persists sale aggregates, their lines, and their event
// ledger, mapping between domain entities and database rows.
package salerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleDTO is the database row of a sale aggregate. The order ref is unique
// per tenant; the version column guards concurrent updates.
type SaleDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  int32           `gorm:"index;uniqueIndex:idx_sales_tenant_order_ref"`
	OrderRef  string          `gorm:"uniqueIndex:idx_sales_tenant_order_ref"`
	CostPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status    int
	Version   int64
	Lines     []SaleLineDTO `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName overrides GORM's default naming.
func (SaleDTO) TableName() string {
	return "sales"
}

// SaleLineDTO is one requested position of a sale.
type SaleLineDTO struct {
	SaleID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockID  int32     `gorm:"primaryKey"`
	Quantity int32
}

// TableName overrides GORM's default naming.
func (SaleLineDTO) TableName() string {
	return "sale_lines"
}

// SaleEventDTO is one append-only row of the sale event ledger. The table is
// range-partitioned by created_at month.
type SaleEventDTO struct {
	TenantID  int32     `gorm:"index"`
	SaleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int64     `gorm:"primaryKey"`
	Status    int
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (SaleEventDTO) TableName() string {
	return "sale_events"
}

func fromDomain(aggregate *sale.Sale) SaleDTO {
	lines := make([]SaleLineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, SaleLineDTO{
			SaleID:   aggregate.ID().Bytes(),
			StockID:  l.StockID,
			Quantity: l.Quantity,
		})
	}

	return SaleDTO{
		ID:        aggregate.ID().Bytes(),
		TenantID:  int32(aggregate.Tenant()),
		OrderRef:  aggregate.OrderRef(),
		CostPrice: aggregate.CostPrice(),
		Status:    int(aggregate.Status()),
		Version:   aggregate.Version().Int64(),
		Lines:     lines,
	}
}

func eventFromDomain(event sale.Event) SaleEventDTO {
	return SaleEventDTO{
		TenantID:  int32(event.Tenant()),
		SaleID:    event.SaleID().Bytes(),
		Version:   event.Version().Int64(),
		Status:    int(event.Status()),
		CreatedAt: event.CreatedAt(),
	}
}

func toDomain(dto SaleDTO) (*sale.Sale, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	version, err := kernel.NewVersion(dto.Version)
	if err != nil {
		return nil, err
	}

	lines := make([]sale.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, sale.Line{StockID: l.StockID, Quantity: l.Quantity})
	}

	return sale.RestoreSale(id, tenant, dto.OrderRef, lines, dto.CostPrice,
		sale.Status(dto.Status), version)
}

func eventToDomain(dto SaleEventDTO) (sale.Event, error) {
	saleID, err := kernel.UUIDFromBytes(dto.SaleID[:])
	if err != nil {
		return sale.Event{}, err
	}

	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return sale.Event{}, err
	}

	version, err := kernel.NewVersion(dto.Version)
	if err != nil {
		return sale.Event{}, err
	}

	return sale.NewEvent(tenant, saleID, version, sale.Status(dto.Status), dto.CreatedAt)
}
