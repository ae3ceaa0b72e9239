// Package productrepo persists product catalog rows for the order commit
// path. Stock is the contended column: every checkout and cancellation
// mutates it under a row lock.
package productrepo

import (
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is the database representation of a product.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID `gorm:"type:uuid;index"`
	Name     string    `gorm:"size:100"`
	Category string    `gorm:"size:50"`
	Unit     string    `gorm:"size:20"`
	Price    float64
	Stock    float64
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID().Bytes(),
		SellerID: p.SellerID().Bytes(),
		Name:     p.Name(),
		Category: p.Category(),
		Unit:     p.Unit(),
		Price:    p.Price(),
		Stock:    p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, sellerID, dto.Name, dto.Category, dto.Unit, dto.Price, dto.Stock)
}
