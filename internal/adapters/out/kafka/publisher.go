// Package kafka publishes terminal sale events to a Kafka topic for
// downstream consumers (billing, notifications, analytics).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/sale"

	"github.com/segmentio/kafka-go"
)

// saleEventMessage is the wire envelope of a published sale event.
type saleEventMessage struct {
	TenantID  int32     `json:"tenant_id"`
	SaleID    string    `json:"sale_id"`
	Version   int64     `json:"version"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleEventPublisher implements ports.SaleEventPublisher on a Kafka topic.
// Delivery is at-least-once; the message key carries tenant, sale, and
// version so consumers can deduplicate.
type SaleEventPublisher struct {
	writer *kafka.Writer
}

// NewSaleEventPublisher creates a publisher writing to the given topic.
func NewSaleEventPublisher(brokers []string, topic string) *SaleEventPublisher {
	return &SaleEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish writes one sale event.
func (p *SaleEventPublisher) Publish(ctx context.Context, event sale.Event) error {
	payload, err := json.Marshal(saleEventMessage{
		TenantID:  int32(event.Tenant()),
		SaleID:    event.SaleID().String(),
		Version:   event.Version().Int64(),
		Status:    event.Status().String(),
		CreatedAt: event.CreatedAt(),
	})
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%d:%s:%d", event.Tenant(), event.SaleID(), event.Version().Int64())

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close releases the underlying writer.
func (p *SaleEventPublisher) Close() error {
	return p.writer.Close()
}
