package queries

import (
	"errors"
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order on behalf of the buyer who placed it.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID, actor order.Actor) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns who is asking.
func (q GetOrderQuery) Actor() order.Actor {
	return q.actor
}

// OrderLineResponse is one line of an order read model.
type OrderLineResponse struct {
	ProductID kernel.UUID
	SellerID  kernel.UUID
	Name      string
	Price     float64
	Quantity  float64
	Subtotal  float64
}

// OrderResponse is the order read model returned by the order queries. Status
// and method fields carry their wire strings, not the internal enums.
type OrderResponse struct {
	ID             kernel.UUID
	BuyerID        kernel.UUID
	Status         string
	DeliveryMethod string
	PaymentMethod  string
	FullName       string
	PhoneNumber    string
	Address        string
	City           string
	State          string
	PinCode        string
	PickupTime     *time.Time
	TrackingLink   string
	TotalPrice     float64
	CreatedAt      time.Time
	Lines          []OrderLineResponse
}
