package ports

import (
	"context"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/product"
)

// ProductRepository provides catalog access for the order commit path.
// Catalog browsing reads elsewhere may be stale; the commit path must use
// GetForUpdate so stock checks and writes happen under row locks.
type ProductRepository interface {
	// Get retrieves a product by identifier without locking.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves the given products with their rows locked for
	// the duration of the surrounding transaction. Missing products are
	// simply absent from the result; the caller decides whether that is an
	// error. IDs are locked in sorted order to avoid deadlocks between
	// concurrent commits.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)

	// UpdateStock persists the aggregate's current stock quantity.
	UpdateStock(ctx context.Context, aggregate *product.Product) error

	// Add persists a new product. Used by catalog management and tests.
	Add(ctx context.Context, aggregate *product.Product) error
}
