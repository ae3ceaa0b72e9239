package order

import (
	"time"

	"agrimarket/internal/core/domain/model/kernel"
)

// StatusChangedEvent is emitted after a successful fulfillment transition.
// It is handed to the Notifier asynchronously; delivery failures never affect
// the committed transition.
type StatusChangedEvent struct {
	OrderID        kernel.UUID
	BuyerID        kernel.UUID
	DeliveryMethod DeliveryMethod
	From           Status
	To             Status
	OccurredAt     time.Time
}

// NewStatusChangedEvent captures a transition that has just been committed.
func NewStatusChangedEvent(o *Order, from Status) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:        o.ID(),
		BuyerID:        o.BuyerID(),
		DeliveryMethod: o.DeliveryMethod(),
		From:           from,
		To:             o.Status(),
		OccurredAt:     time.Now().UTC(),
	}
}
