package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSellerOrdersQueryHandler lists the orders a seller has lines in. The
// seller manages fulfillment from this view, so it never exposes lines that
// belong to other sellers in the same order.
type GetSellerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerOrdersQueryHandler creates a handler for seller order listings.
func NewGetSellerOrdersQueryHandler(db *gorm.DB) GetSellerOrdersQueryHandler {
	return GetSellerOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are returned newest first; each carries
// only the querying seller's lines.
func (h GetSellerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSellerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0)
	sellerID := query.SellerID().Bytes()

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders
		WHERE id IN (SELECT DISTINCT order_id FROM order_lines WHERE seller_id = ?)
		ORDER BY created_at DESC`,
		sellerID,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.Bytes())
	}

	lines, err := loadLines(ctx, h.db, ids, &sellerID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}

	return orders, nil
}
