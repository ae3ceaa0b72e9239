package services

import (
	"errors"
	"fmt"
	"math"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/domain/model/product"
)

// DefaultPriceTolerance is the allowed absolute difference between the price
// a buyer saw and the live catalog price. The server-side check is
// authoritative; the tolerance is tunable per validator.
const DefaultPriceTolerance = 0.01

var (
	// ErrProductNotFound is the sentinel wrapped by ProductNotFoundError.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is the sentinel wrapped by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPriceChanged is the sentinel wrapped by PriceChangedError.
	ErrPriceChanged = errors.New("price has changed")
)

// ProductNotFoundError reports a requested line whose product no longer
// exists in the catalog.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductNotFound, e.Name)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// InsufficientStockError reports a line whose quantity exceeds live stock.
// Available carries the current stock so the caller can re-present the cart.
type InsufficientStockError struct {
	Name      string
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s, available: %v", ErrInsufficientStock, e.Name, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// PriceChangedError reports a line whose price drifted beyond the tolerance.
// CurrentPrice carries the live price so the caller can re-present the cart.
type PriceChangedError struct {
	Name         string
	CurrentPrice float64
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("%s: %s, current price: %v", ErrPriceChanged, e.Name, e.CurrentPrice)
}

func (e *PriceChangedError) Unwrap() error {
	return ErrPriceChanged
}

// OrderValidator performs the authoritative commit-time re-check of an
// OrderRequest against live product state. Validation is all-or-nothing
// across the whole order: every line is checked and all violations are
// reported together; a request with any violation commits nothing.
type OrderValidator struct {
	priceTolerance float64
}

// NewOrderValidator creates a validator with the given price tolerance.
// Non-positive values fall back to DefaultPriceTolerance.
func NewOrderValidator(priceTolerance float64) OrderValidator {
	if priceTolerance <= 0 {
		priceTolerance = DefaultPriceTolerance
	}
	return OrderValidator{priceTolerance: priceTolerance}
}

// Validate checks every requested line against the supplied catalog state
// (which the caller must have loaded under the commit transaction's lock).
// On success it returns the commit-ready order lines, each carrying the
// live product's seller, and the order total including the delivery fee.
func (v OrderValidator) Validate(
	req OrderRequest,
	catalog map[kernel.UUID]*product.Product,
) ([]order.Line, float64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	var violations []error
	lines := make([]order.Line, 0, len(req.Lines()))

	for _, requested := range req.Lines() {
		p, ok := catalog[requested.ProductID()]
		if !ok || p == nil {
			violations = append(violations, &ProductNotFoundError{Name: requested.Name()})
			continue
		}

		if requested.Quantity() > p.Stock() {
			violations = append(violations, &InsufficientStockError{
				Name:      requested.Name(),
				Available: p.Stock(),
			})
			continue
		}

		if math.Abs(requested.Price()-p.Price()) > v.priceTolerance {
			violations = append(violations, &PriceChangedError{
				Name:         requested.Name(),
				CurrentPrice: p.Price(),
			})
			continue
		}

		line, err := order.NewLine(p.ID(), p.SellerID(), requested.Name(), requested.Price(), requested.Quantity())
		if err != nil {
			violations = append(violations, err)
			continue
		}
		lines = append(lines, line)
	}

	if len(violations) > 0 {
		return nil, 0, errors.Join(violations...)
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal()
	}
	total := math.Round((subtotal+req.DeliveryMethod().Fee())*100) / 100

	return lines, total, nil
}
