package ports

import (
	"context"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
)

// OutboxMessage is a status-changed event staged for asynchronous delivery.
// Messages are written in the same transaction as the status update, so an
// event exists if and only if its transition committed.
type OutboxMessage struct {
	ID    kernel.UUID
	Event order.StatusChangedEvent
}

// OutboxRepository stages notification events for the relay job.
type OutboxRepository interface {
	// Add stages an event inside the current transaction.
	Add(ctx context.Context, event order.StatusChangedEvent) error

	// ListUnpublished returns up to limit staged messages, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records that a message has been handed to the Notifier.
	MarkPublished(ctx context.Context, id kernel.UUID) error
}
