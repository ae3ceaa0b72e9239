package queries

import (
	"errors"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/guard"
)

var ErrGetSellerOrdersQueryIsNotConstructed = errors.New(
	"GetSellerOrdersQuery must be created via NewGetSellerOrdersQuery constructor",
)

// GetSellerOrdersQuery retrieves the orders a seller has lines in, newest
// first. Each order carries only that seller's lines.
type GetSellerOrdersQuery struct {
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSellerOrdersQuery creates a query for a seller's incoming orders.
func NewGetSellerOrdersQuery(sellerID kernel.UUID) (GetSellerOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerOrdersQuery{}, err
	}

	return GetSellerOrdersQuery{
		sellerID: sellerID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerOrdersQueryIsNotConstructed)
}

// SellerID returns whose incoming orders are requested.
func (q GetSellerOrdersQuery) SellerID() kernel.UUID {
	return q.sellerID
}
