// Package product contains the catalog aggregate consumed by the order
// commit path. Browsing reads may be stale; only Reserve/Restock, executed
// under the commit transaction's row lock, are authoritative for stock.
package product

import (
	"errors"
	"fmt"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry: a seller's goods with live price and stock.
// Stock changes only through Reserve and Restock so the quantity can never
// silently go negative.
type Product struct {
	id       kernel.UUID
	sellerID kernel.UUID
	name     string
	category string
	unit     string
	price    float64
	stock    float64

	isConstructed bool
}

// NewProduct creates a validated product with an initial stock quantity.
func NewProduct(id, sellerID kernel.UUID, name, category, unit string, price, stock float64) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSellerID(sellerID),
		p.setName(name),
		p.setCategory(category),
		p.setUnit(unit),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id, sellerID kernel.UUID, name, category, unit string, price, stock float64) (*Product, error) {
	return NewProduct(id, sellerID, name, category, unit, price, stock)
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SellerID returns the owning seller's identifier.
func (p *Product) SellerID() kernel.UUID {
	return p.sellerID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Category returns the product category.
func (p *Product) Category() string {
	return p.category
}

// Unit returns the unit the stock quantity is measured in.
func (p *Product) Unit() string {
	return p.unit
}

// Price returns the live per-unit price.
func (p *Product) Price() float64 {
	return p.price
}

// Stock returns the available quantity.
func (p *Product) Stock() float64 {
	return p.stock
}

// Reserve removes quantity from stock for an order being committed. Fails
// when the requested quantity exceeds what is available; stock is unchanged
// on failure.
func (p *Product) Reserve(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%v is not greater than 0", quantity))
	}
	if quantity > p.stock {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, p.stock)
	}

	p.stock -= quantity
	return nil
}

// Restock returns quantity to stock, used when a buyer cancels a Pending
// order.
func (p *Product) Restock(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%v is not greater than 0", quantity))
	}

	p.stock += quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setCategory(category string) error {
	if category == "" {
		return errs.NewValueIsRequiredError("product category")
	}
	p.category = category
	return nil
}

func (p *Product) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("product unit")
	}
	p.unit = unit
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock float64) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product stock",
			fmt.Errorf("%v is negative", stock))
	}
	p.stock = stock
	return nil
}
