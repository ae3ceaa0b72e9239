package commands

import (
	"errors"

	"agrimarket/internal/core/domain/model/cart"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a CreateOrderCommand
// was not created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request to turn a cart into a
// durable order. The order ID is assigned by the caller so retries are
// idempotent at the ledger.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	cart           cart.Cart
	profile        order.DeliveryProfile
	deliveryMethod order.DeliveryMethod
	paymentMethod  order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. The cart and
// profile must already be constructed; method and payment must be valid.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	c cart.Cart,
	profile order.DeliveryProfile,
	deliveryMethod order.DeliveryMethod,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		c.Validate(),
		profile.Validate(),
		deliveryMethod.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:        orderID,
		cart:           c,
		profile:        profile,
		deliveryMethod: deliveryMethod,
		paymentMethod:  paymentMethod,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the caller-assigned identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Cart returns the cart being checked out.
func (c CreateOrderCommand) Cart() cart.Cart {
	return c.cart
}

// DeliveryProfile returns the validated delivery profile.
func (c CreateOrderCommand) DeliveryProfile() order.DeliveryProfile {
	return c.profile
}

// DeliveryMethod returns the chosen fulfillment track.
func (c CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.deliveryMethod
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}
