package order

import (
	"errors"
	"fmt"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line was not created through the
// NewLine constructor.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one immutable line item of an order: the product snapshot taken at
// commit time. Name and price never change after the order exists, which
// protects the buyer from later catalog drift.
type Line struct {
	productID kernel.UUID
	sellerID  kernel.UUID
	name      string
	price     float64
	quantity  float64

	guard guard.ConstructorGuard
}

// NewLine creates a validated order line. Price is the price-at-order-time
// and quantity the purchased amount, both strictly positive.
func NewLine(productID, sellerID kernel.UUID, name string, price, quantity float64) (Line, error) {
	if err := errors.Join(
		productID.Validate(),
		sellerID.Validate(),
		validateLineName(name),
		validateLinePrice(price),
		validateLineQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return Line{
		productID: productID,
		sellerID:  sellerID,
		name:      name,
		price:     price,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was built through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the referenced product's identifier.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// SellerID returns the seller owning the product at commit time.
func (l Line) SellerID() kernel.UUID {
	return l.sellerID
}

// Name returns the product name snapshot.
func (l Line) Name() string {
	return l.name
}

// Price returns the per-unit price at order time.
func (l Line) Price() float64 {
	return l.price
}

// Quantity returns the purchased quantity.
func (l Line) Quantity() float64 {
	return l.quantity
}

// Subtotal returns price × quantity for this line.
func (l Line) Subtotal() float64 {
	return l.price * l.quantity
}

func validateLineName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line name")
	}
	return nil
}

func validateLinePrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("line price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	return nil
}

func validateLineQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("line quantity",
			fmt.Errorf("%v is not greater than 0", quantity))
	}
	return nil
}
