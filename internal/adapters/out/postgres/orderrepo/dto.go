// Package orderrepo persists order aggregates. It maps the aggregate to an
// orders row plus one order_lines row per line item, and maps rows back
// through RestoreOrder so nothing reaches the domain unvalidated.
package orderrepo

import (
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	BuyerID        uuid.UUID          `gorm:"type:uuid;index"`
	Profile        DeliveryProfileDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryMethod int
	PaymentMethod  int
	Status         int `gorm:"index"`
	PickupTime     *time.Time
	TrackingLink   string `gorm:"size:500"`
	TotalPrice     float64
	CreatedAt      time.Time `gorm:"index"`
	Lines          []LineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryProfileDTO is the delivery profile snapshot embedded in the orders
// table under the delivery_ column prefix.
type DeliveryProfileDTO struct {
	FullName    string `gorm:"size:100"`
	PhoneNumber string `gorm:"size:10"`
	Address     string `gorm:"size:200"`
	City        string `gorm:"size:50"`
	State       string `gorm:"size:50"`
	PinCode     string `gorm:"size:6"`
}

// LineDTO is one order line row. Lines are immutable once the order is
// created, so the composite key (order, product) is stable.
type LineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"size:100"`
	Price     float64
	Quantity  float64
}

// TableName overrides GORM's default naming to use "order_lines".
func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := make([]LineDTO, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   o.ID().Bytes(),
			ProductID: line.ProductID().Bytes(),
			SellerID:  line.SellerID().Bytes(),
			Name:      line.Name(),
			Price:     line.Price(),
			Quantity:  line.Quantity(),
		})
	}

	return OrderDTO{
		ID:      o.ID().Bytes(),
		BuyerID: o.BuyerID().Bytes(),
		Profile: DeliveryProfileDTO{
			FullName:    o.DeliveryProfile().FullName(),
			PhoneNumber: o.DeliveryProfile().PhoneNumber(),
			Address:     o.DeliveryProfile().Address(),
			City:        o.DeliveryProfile().City(),
			State:       o.DeliveryProfile().State(),
			PinCode:     o.DeliveryProfile().PinCode(),
		},
		DeliveryMethod: int(o.DeliveryMethod()),
		PaymentMethod:  int(o.PaymentMethod()),
		Status:         int(o.Status()),
		PickupTime:     o.PickupTime(),
		TrackingLink:   o.TrackingLink(),
		TotalPrice:     o.TotalPrice(),
		CreatedAt:      o.CreatedAt(),
		Lines:          lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(l.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		sellerID, lineErr := kernel.UUIDFromBytes(l.SellerID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productID, sellerID, l.Name, l.Price, l.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	profile, err := order.NewDeliveryProfile(
		dto.Profile.FullName,
		dto.Profile.PhoneNumber,
		dto.Profile.Address,
		dto.Profile.City,
		dto.Profile.State,
		dto.Profile.PinCode,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		buyerID,
		lines,
		profile,
		order.DeliveryMethod(dto.DeliveryMethod),
		order.PaymentMethod(dto.PaymentMethod),
		order.Status(dto.Status),
		dto.PickupTime,
		dto.TrackingLink,
		dto.TotalPrice,
		dto.CreatedAt,
	)
}
