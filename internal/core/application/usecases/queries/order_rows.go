package queries

import (
	"context"
	"database/sql"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderColumns is the column list every order query selects, in the order
// scanOrderRow expects.
const orderColumns = `
	id,
	buyer_id,
	delivery_full_name,
	delivery_phone_number,
	delivery_address,
	delivery_city,
	delivery_state,
	delivery_pin_code,
	delivery_method,
	payment_method,
	status,
	pickup_time,
	tracking_link,
	total_price,
	created_at`

func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp           OrderResponse
		id, buyerID    uuid.UUID
		deliveryMethod int
		paymentMethod  int
		status         int
		pickupTime     sql.NullTime
	)

	err := rows.Scan(
		&id,
		&buyerID,
		&resp.FullName,
		&resp.PhoneNumber,
		&resp.Address,
		&resp.City,
		&resp.State,
		&resp.PinCode,
		&deliveryMethod,
		&paymentMethod,
		&status,
		&pickupTime,
		&resp.TrackingLink,
		&resp.TotalPrice,
		&resp.CreatedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderResponse{}, err
	}

	resp.Status = order.Status(status).String()
	resp.DeliveryMethod = order.DeliveryMethod(deliveryMethod).String()
	resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
	if pickupTime.Valid {
		t := pickupTime.Time
		resp.PickupTime = &t
	}
	return resp, nil
}

// loadLines fetches the line rows for the given orders. When sellerID is
// non-nil only that seller's lines are returned.
func loadLines(
	ctx context.Context,
	db *gorm.DB,
	orderIDs []uuid.UUID,
	sellerID *uuid.UUID,
) (map[kernel.UUID][]OrderLineResponse, error) {
	lines := make(map[kernel.UUID][]OrderLineResponse, len(orderIDs))
	if len(orderIDs) == 0 {
		return lines, nil
	}

	q := `
		SELECT
			order_id,
			product_id,
			seller_id,
			name,
			price,
			quantity
		FROM order_lines
		WHERE order_id IN ?`
	args := []any{orderIDs}
	if sellerID != nil {
		q += ` AND seller_id = ?`
		args = append(args, *sellerID)
	}
	q += ` ORDER BY order_id, name`

	rows, err := db.WithContext(ctx).Raw(q, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line                       OrderLineResponse
			orderID, productID, seller uuid.UUID
		)
		if err = rows.Scan(&orderID, &productID, &seller, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, err
		}

		oid, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		if line.ProductID, idErr = kernel.UUIDFromBytes(productID[:]); idErr != nil {
			return nil, idErr
		}
		if line.SellerID, idErr = kernel.UUIDFromBytes(seller[:]); idErr != nil {
			return nil, idErr
		}

		line.Subtotal = line.Price * line.Quantity
		lines[oid] = append(lines[oid], line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
