package ports

import (
	"context"

	"agrimarket/internal/core/domain/model/order"
)

// Notifier is the external collaborator informed of order status changes.
// Delivery is fire-and-forget from the transition's point of view: a
// notifier failure never rolls back committed state. The relay job retries
// undelivered events.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, event order.StatusChangedEvent) error
}
