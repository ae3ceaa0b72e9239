package http

import (
	"time"

	"agrimarket/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DeliveryProfileRequest carries the recipient details for an order.
type DeliveryProfileRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
}

// OrderLineRequest is one cart line submitted at checkout. Price is the
// price the buyer saw; it is re-checked against the live catalog.
type OrderLineRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// CreateOrderRequest is the checkout payload. OrderID is optional: a client
// that supplies its own ID can retry the request idempotently. TotalPrice is
// the total the buyer was shown and is cross-checked server-side.
type CreateOrderRequest struct {
	OrderID         string                 `json:"order_id,omitempty"`
	Lines           []OrderLineRequest     `json:"lines"`
	DeliveryProfile DeliveryProfileRequest `json:"delivery_profile"`
	DeliveryMethod  string                 `json:"delivery_method"`
	PaymentMethod   string                 `json:"payment_method"`
	TotalPrice      float64                `json:"total_price"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// UpdateStatusRequest requests a fulfillment transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDetailsRequest sets delivery details on an order. Exactly the fields
// present are applied: pickup_time for self-pickup orders, tracking_link for
// parcel orders.
type UpdateDetailsRequest struct {
	PickupTime   *time.Time `json:"pickup_time,omitempty"`
	TrackingLink *string    `json:"tracking_link,omitempty"`
}

// OrderLine is one line of an order as returned to clients.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	SellerID  string  `json:"seller_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is the order read model as returned to clients.
type Order struct {
	ID              string                 `json:"id"`
	BuyerID         string                 `json:"buyer_id"`
	Status          string                 `json:"status"`
	DeliveryMethod  string                 `json:"delivery_method"`
	PaymentMethod   string                 `json:"payment_method"`
	DeliveryProfile DeliveryProfileRequest `json:"delivery_profile"`
	PickupTime      *time.Time             `json:"pickup_time,omitempty"`
	TrackingLink    string                 `json:"tracking_link,omitempty"`
	TotalPrice      float64                `json:"total_price"`
	CreatedAt       time.Time              `json:"created_at"`
	Lines           []OrderLine            `json:"lines"`
}

func toOrder(r queries.OrderResponse) Order {
	lines := make([]OrderLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = OrderLine{
			ProductID: l.ProductID.String(),
			SellerID:  l.SellerID.String(),
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		}
	}

	return Order{
		ID:             r.ID.String(),
		BuyerID:        r.BuyerID.String(),
		Status:         r.Status,
		DeliveryMethod: r.DeliveryMethod,
		PaymentMethod:  r.PaymentMethod,
		DeliveryProfile: DeliveryProfileRequest{
			FullName:    r.FullName,
			PhoneNumber: r.PhoneNumber,
			Address:     r.Address,
			City:        r.City,
			State:       r.State,
			PinCode:     r.PinCode,
		},
		PickupTime:   r.PickupTime,
		TrackingLink: r.TrackingLink,
		TotalPrice:   r.TotalPrice,
		CreatedAt:    r.CreatedAt,
		Lines:        lines,
	}
}

func toOrders(rs []queries.OrderResponse) []Order {
	orders := make([]Order, len(rs))
	for i, r := range rs {
		orders[i] = toOrder(r)
	}
	return orders
}
