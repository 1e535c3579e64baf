// Package queries holds the read side. Handlers read straight from the
// database through gorm and return flat views instead of aggregates.
package queries

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
)

type LineItemView struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	LineTotal  kernel.Money
}

// StatusChangeView is one history entry. From is nil for the creation entry.
type StatusChangeView struct {
	From   *order.Status
	To     order.Status
	Role   actor.Role
	Reason string
	At     time.Time
}

// OrderView is what callers see of an order. History is only filled by
// GetOrderQueryHandler.
type OrderView struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	RiderID         *kernel.UUID
	Status          order.Status
	Total           kernel.Money
	DeliveryAddress string
	Items           []LineItemView
	History         []StatusChangeView
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderViewOf renders an aggregate returned by a command.
func OrderViewOf(o *order.Order, history ...order.StatusChange) OrderView {
	items := o.Items()
	view := OrderView{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		RestaurantID:    o.RestaurantID(),
		RiderID:         o.RiderID(),
		Status:          o.Status(),
		Total:           o.Total(),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           make([]LineItemView, 0, len(items)),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	for _, item := range items {
		view.Items = append(view.Items, LineItemView{
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity(),
			LineTotal:  item.LineTotal(),
		})
	}
	for _, c := range history {
		view.History = append(view.History, StatusChangeView{
			From: c.From(), To: c.To(), Role: c.Role(), Reason: c.Reason(), At: c.At(),
		})
	}
	return view
}

type NotificationView struct {
	ID           kernel.UUID
	Type         notification.Type
	Title        string
	Message      string
	OrderID      kernel.UUID
	RestaurantID *kernel.UUID
	IsRead       bool
	Metadata     map[string]string
	CreatedAt    time.Time
}
