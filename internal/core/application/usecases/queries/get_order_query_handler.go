package queries

import (
	"context"
	"fmt"

	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order from the database. The read model is
// built straight from SQL, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Buyers see only their own orders and sellers only
// orders they have lines in; anyone else gets ErrForbidden, not a copy of the
// data.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`,
		query.OrderID().Bytes(),
	).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	lines, err := loadLines(ctx, h.db, []uuid.UUID{query.OrderID().Bytes()}, nil)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Lines = lines[resp.ID]

	switch query.Actor().Role() {
	case order.RoleBuyer:
		if !resp.BuyerID.IsEqual(query.Actor().ID()) {
			return OrderResponse{}, fmt.Errorf("%w: order %s belongs to another buyer",
				order.ErrForbidden, query.OrderID())
		}
	case order.RoleSeller:
		// A seller sees only the slice of the order they are fulfilling.
		own := make([]OrderLineResponse, 0, len(resp.Lines))
		for _, line := range resp.Lines {
			if line.SellerID.IsEqual(query.Actor().ID()) {
				own = append(own, line)
			}
		}
		if len(own) == 0 {
			return OrderResponse{}, fmt.Errorf("%w: seller %s has no lines in order %s",
				order.ErrForbidden, query.Actor().ID(), query.OrderID())
		}
		resp.Lines = own
	}

	return resp, nil
}
