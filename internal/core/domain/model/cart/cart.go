// Package cart models the buyer's pre-commit purchase intent. A Cart is an
// explicitly passed value, not ambient session state: the checkout path
// receives it whole and never mutates it.
package cart

import (
	"errors"
	"fmt"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

var (
	// ErrLineIsNotConstructed is returned when a Line was not created through
	// NewLine.
	ErrLineIsNotConstructed = errors.New("cart Line must be created via NewLine constructor")

	// ErrCartIsNotConstructed is returned when a Cart was not created through
	// NewCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
)

// Line is one product+quantity intent in a cart, carrying the price and name
// the buyer saw while browsing. The commit path re-checks both against the
// live catalog.
type Line struct {
	productID kernel.UUID
	name      string
	price     float64
	quantity  float64
	imageURL  string

	guard guard.ConstructorGuard
}

// NewLine creates a validated cart line. The image URL is optional display
// data and carried through untouched.
func NewLine(productID kernel.UUID, name string, price, quantity float64, imageURL string) (Line, error) {
	if err := errors.Join(
		productID.Validate(),
		validateName(name),
		validatePositive("price", price),
		validatePositive("quantity", quantity),
	); err != nil {
		return Line{}, err
	}

	return Line{
		productID: productID,
		name:      name,
		price:     price,
		quantity:  quantity,
		imageURL:  imageURL,
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

// Name returns the product name the buyer saw.
func (l Line) Name() string {
	return l.name
}

// Price returns the per-unit price the buyer saw.
func (l Line) Price() float64 {
	return l.price
}

// Quantity returns the intended purchase quantity.
func (l Line) Quantity() float64 {
	return l.quantity
}

// ImageURL returns the optional product image reference.
func (l Line) ImageURL() string {
	return l.imageURL
}

// Cart is a buyer's list of purchase intents. A cart may be empty; checkout
// is where emptiness becomes an error.
type Cart struct {
	buyerID kernel.UUID
	lines   []Line

	guard guard.ConstructorGuard
}

// NewCart creates a cart for the given buyer. Every line must itself be
// constructed; duplicate products are rejected so quantities cannot be
// split across lines.
func NewCart(buyerID kernel.UUID, lines []Line) (Cart, error) {
	if err := buyerID.Validate(); err != nil {
		return Cart{}, err
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return Cart{}, err
		}
		if _, dup := seen[line.ProductID()]; dup {
			return Cart{}, errs.NewValueIsInvalidErrorWithCause("cart",
				fmt.Errorf("product %s appears in more than one line", line.ProductID()))
		}
		seen[line.ProductID()] = struct{}{}
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)

	return Cart{
		buyerID: buyerID,
		lines:   copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the cart was built through NewCart.
func (c Cart) Validate() error {
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// BuyerID returns the owning buyer's identifier.
func (c Cart) BuyerID() kernel.UUID {
	return c.buyerID
}

// Lines returns a copy of the cart's lines.
func (c Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func validatePositive(field string, v float64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(field,
			fmt.Errorf("%v is not greater than 0", v))
	}
	return nil
}
