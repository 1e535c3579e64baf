// Package orderrepo maps the Order aggregate onto the orders and
// order_line_items tables.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;index"`
	RiderID         *uuid.UUID `gorm:"type:uuid;index"`
	Status          string
	TotalCents      int64
	DeliveryAddress string
	LineItems       []LineItemDTO `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO keeps the name and price the customer saw when ordering.
type LineItemDTO struct {
	ID             uint      `gorm:"primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Position       int
	MenuItemID     uuid.UUID `gorm:"type:uuid"`
	Name           string
	UnitPriceCents int64
	Quantity       int
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := o.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	items := o.Items()
	lineItems := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		lineItems = append(lineItems, LineItemDTO{
			OrderID:        o.ID().Bytes(),
			Position:       i,
			MenuItemID:     item.MenuItemID().Bytes(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Quantity:       item.Quantity(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		RestaurantID:    o.RestaurantID().Bytes(),
		RiderID:         riderID,
		Status:          o.Status().String(),
		TotalCents:      o.Total().Cents(),
		DeliveryAddress: o.DeliveryAddress(),
		LineItems:       lineItems,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
}

// ToDomain rebuilds the aggregate. Line items must be ordered by position.
// It is exported for the read side, which loads orders in bulk.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		item, itemErr := lineItemToDomain(li)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, restaurantID, riderID, items, total, status,
		dto.DeliveryAddress, dto.CreatedAt, dto.UpdatedAt, dto.Version)
}

func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPriceCents)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(menuItemID, dto.Name, price, dto.Quantity)
}
