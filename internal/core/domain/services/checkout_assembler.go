package services

import (
	"errors"

	"agrimarket/internal/core/domain/model/cart"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/guard"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on a cart with no
	// lines. Surfaced for caller correction, never retried.
	ErrEmptyCart = errors.New("cart has no lines")

	// ErrOrderRequestIsNotConstructed is returned when an OrderRequest was
	// not produced by the CheckoutAssembler.
	ErrOrderRequestIsNotConstructed = errors.New("OrderRequest must be created via CheckoutAssembler.Assemble")
)

// OrderRequest is the commit candidate produced by the CheckoutAssembler:
// the cart snapshot plus a complete delivery profile and the chosen delivery
// and payment methods. It has not yet been checked against live product
// state; that is the OrderValidator's job.
type OrderRequest struct {
	buyerID        kernel.UUID
	lines          []cart.Line
	profile        order.DeliveryProfile
	deliveryMethod order.DeliveryMethod
	paymentMethod  order.PaymentMethod

	guard guard.ConstructorGuard
}

// BuyerID returns the buyer placing the order.
func (r OrderRequest) BuyerID() kernel.UUID {
	return r.buyerID
}

// Lines returns a copy of the requested cart lines.
func (r OrderRequest) Lines() []cart.Line {
	lines := make([]cart.Line, len(r.lines))
	copy(lines, r.lines)
	return lines
}

// DeliveryProfile returns the validated delivery profile.
func (r OrderRequest) DeliveryProfile() order.DeliveryProfile {
	return r.profile
}

// DeliveryMethod returns the chosen fulfillment track.
func (r OrderRequest) DeliveryMethod() order.DeliveryMethod {
	return r.deliveryMethod
}

// PaymentMethod returns the chosen payment method.
func (r OrderRequest) PaymentMethod() order.PaymentMethod {
	return r.paymentMethod
}

// Validate ensures the request was produced by the assembler.
func (r OrderRequest) Validate() error {
	return r.guard.Validate(ErrOrderRequestIsNotConstructed)
}

// CheckoutAssembler merges a cart and a delivery profile into an
// OrderRequest. Pure assembly: no persistence, no side effects. Field-level
// profile validation happens when the profile is constructed; the assembler
// verifies completeness of the whole.
type CheckoutAssembler struct{}

// NewCheckoutAssembler creates a checkout assembler.
func NewCheckoutAssembler() CheckoutAssembler {
	return CheckoutAssembler{}
}

// Assemble produces an OrderRequest from a non-empty cart and a complete
// delivery profile. Fails with ErrEmptyCart when the cart has no lines, and
// with the underlying validation errors when any input was not properly
// constructed.
func (CheckoutAssembler) Assemble(
	c cart.Cart,
	profile order.DeliveryProfile,
	deliveryMethod order.DeliveryMethod,
	paymentMethod order.PaymentMethod,
) (OrderRequest, error) {
	if err := errors.Join(
		c.Validate(),
		profile.Validate(),
		deliveryMethod.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return OrderRequest{}, err
	}

	if c.IsEmpty() {
		return OrderRequest{}, ErrEmptyCart
	}

	return OrderRequest{
		buyerID:        c.BuyerID(),
		lines:          c.Lines(),
		profile:        profile,
		deliveryMethod: deliveryMethod,
		paymentMethod:  paymentMethod,
		guard:          guard.NewConstructorGuard(),
	}, nil
}
