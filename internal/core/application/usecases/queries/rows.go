package queries

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Row types mirror the tables owned by the postgres adapters. The read side
// scans into them directly.

type orderRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	RestaurantID    uuid.UUID
	RiderID         *uuid.UUID
	Status          string
	TotalCents      int64
	DeliveryAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type lineItemRow struct {
	OrderID        uuid.UUID
	MenuItemID     uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

type historyRow struct {
	FromStatus    *string
	ToStatus      string
	ChangedByRole string
	Reason        string
	CreatedAt     time.Time
}

type notificationRow struct {
	ID           uuid.UUID
	Type         string
	Title        string
	Message      string
	OrderID      uuid.UUID
	RestaurantID *uuid.UUID
	IsRead       bool
	Metadata     string
	CreatedAt    time.Time
}

func uuidOf(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func optionalUUIDOf(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuidOf(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r orderRow) view(items []lineItemRow) (OrderView, error) {
	id, err := uuidOf(r.ID)
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := uuidOf(r.CustomerID)
	if err != nil {
		return OrderView{}, err
	}
	restaurantID, err := uuidOf(r.RestaurantID)
	if err != nil {
		return OrderView{}, err
	}
	riderID, err := optionalUUIDOf(r.RiderID)
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	total, err := kernel.NewMoney(r.TotalCents)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		RiderID:         riderID,
		Status:          status,
		Total:           total,
		DeliveryAddress: r.DeliveryAddress,
		Items:           make([]LineItemView, 0, len(items)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, item := range items {
		itemView, itemErr := item.view()
		if itemErr != nil {
			return OrderView{}, itemErr
		}
		view.Items = append(view.Items, itemView)
	}
	return view, nil
}

func (r lineItemRow) view() (LineItemView, error) {
	menuItemID, err := uuidOf(r.MenuItemID)
	if err != nil {
		return LineItemView{}, err
	}
	price, err := kernel.NewMoney(r.UnitPriceCents)
	if err != nil {
		return LineItemView{}, err
	}
	lineTotal, err := price.Multiply(r.Quantity)
	if err != nil {
		return LineItemView{}, err
	}
	return LineItemView{
		MenuItemID: menuItemID,
		Name:       r.Name,
		UnitPrice:  price,
		Quantity:   r.Quantity,
		LineTotal:  lineTotal,
	}, nil
}

func (r historyRow) view() (StatusChangeView, error) {
	var from *order.Status
	if r.FromStatus != nil {
		s, err := order.ParseStatus(*r.FromStatus)
		if err != nil {
			return StatusChangeView{}, err
		}
		from = &s
	}
	to, err := order.ParseStatus(r.ToStatus)
	if err != nil {
		return StatusChangeView{}, err
	}
	role, err := actor.ParseRole(r.ChangedByRole)
	if err != nil {
		return StatusChangeView{}, err
	}
	return StatusChangeView{From: from, To: to, Role: role, Reason: r.Reason, At: r.CreatedAt}, nil
}

func (r notificationRow) view() (NotificationView, error) {
	id, err := uuidOf(r.ID)
	if err != nil {
		return NotificationView{}, err
	}
	orderID, err := uuidOf(r.OrderID)
	if err != nil {
		return NotificationView{}, err
	}
	restaurantID, err := optionalUUIDOf(r.RestaurantID)
	if err != nil {
		return NotificationView{}, err
	}
	typ, err := notification.ParseType(r.Type)
	if err != nil {
		return NotificationView{}, err
	}

	meta := map[string]string{}
	if r.Metadata != "" {
		if err = json.Unmarshal([]byte(r.Metadata), &meta); err != nil {
			return NotificationView{}, fmt.Errorf("decode metadata of notification %s: %w", id, err)
		}
	}

	return NotificationView{
		ID:           id,
		Type:         typ,
		Title:        r.Title,
		Message:      r.Message,
		OrderID:      orderID,
		RestaurantID: restaurantID,
		IsRead:       r.IsRead,
		Metadata:     meta,
		CreatedAt:    r.CreatedAt,
	}, nil
}
