package ports

import (
	"context"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
)

// OrderRepository is the durable order ledger: the sole source of truth for
// order status. Orders are created once, mutated only through the exposed
// update methods, and never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate. The order must be valid and not
	// already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the aggregate's current status with an optimistic
	// compare-and-set on expectedStatus. Returns errs.ErrConflict when the
	// stored status no longer matches, so concurrent transitions never
	// silently clobber each other.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// UpdateDeliveryDetails persists the aggregate's pickup time and tracking
	// link. No other fields are written.
	UpdateDeliveryDetails(ctx context.Context, aggregate *order.Order) error
}
