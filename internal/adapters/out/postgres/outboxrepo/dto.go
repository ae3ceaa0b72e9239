// Package outboxrepo persists status-changed events in the transactional
// outbox. Events are appended in the same transaction as the status write and
// drained later by the notification relay job.
package outboxrepo

import (
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is one staged notification event.
type OutboxMessageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	BuyerID        uuid.UUID `gorm:"type:uuid"`
	DeliveryMethod int
	FromStatus     int
	ToStatus       int
	OccurredAt     time.Time  `gorm:"index"`
	PublishedAt    *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "outbox_messages".
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(id kernel.UUID, event order.StatusChangedEvent) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:             id.Bytes(),
		OrderID:        event.OrderID.Bytes(),
		BuyerID:        event.BuyerID.Bytes(),
		DeliveryMethod: int(event.DeliveryMethod),
		FromStatus:     int(event.From),
		ToStatus:       int(event.To),
		OccurredAt:     event.OccurredAt,
	}
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID: id,
		Event: order.StatusChangedEvent{
			OrderID:        orderID,
			BuyerID:        buyerID,
			DeliveryMethod: order.DeliveryMethod(dto.DeliveryMethod),
			From:           order.Status(dto.FromStatus),
			To:             order.Status(dto.ToStatus),
			OccurredAt:     dto.OccurredAt,
		},
	}, nil
}
