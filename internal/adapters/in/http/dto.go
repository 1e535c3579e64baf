package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
)

// Money amounts are rendered as decimal strings ("25.00").

type CreateOrderItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type CreateOrderRequest struct {
	RestaurantID    string                   `json:"restaurantId"`
	Items           []CreateOrderItemRequest `json:"items"`
	DeliveryAddress string                   `json:"deliveryAddress"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type AssignRiderRequest struct {
	RiderID string `json:"riderId"`
}

type LineItemResponse struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
}

type StatusChangeResponse struct {
	FromStatus    *string   `json:"fromStatus"`
	ToStatus      string    `json:"toStatus"`
	ChangedByRole string    `json:"changedByRole"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrderResponse struct {
	ID              string                 `json:"id"`
	CustomerID      string                 `json:"customerId"`
	RestaurantID    string                 `json:"restaurantId"`
	RiderID         *string                `json:"riderId"`
	Status          string                 `json:"status"`
	TotalAmount     string                 `json:"totalAmount"`
	DeliveryAddress string                 `json:"deliveryAddress"`
	Items           []LineItemResponse     `json:"items"`
	StatusHistory   []StatusChangeResponse `json:"statusHistory,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type NotificationResponse struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	OrderID      string            `json:"orderId"`
	RestaurantID *string           `json:"restaurantId"`
	IsRead       bool              `json:"isRead"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrderResponse(v queries.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:              v.ID.String(),
		CustomerID:      v.CustomerID.String(),
		RestaurantID:    v.RestaurantID.String(),
		RiderID:         optionalString(v.RiderID),
		Status:          v.Status.String(),
		TotalAmount:     v.Total.String(),
		DeliveryAddress: v.DeliveryAddress,
		Items:           make([]LineItemResponse, 0, len(v.Items)),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.String(),
			Quantity:   item.Quantity,
			LineTotal:  item.LineTotal.String(),
		})
	}
	for _, change := range v.History {
		var from *string
		if change.From != nil {
			s := change.From.String()
			from = &s
		}
		resp.StatusHistory = append(resp.StatusHistory, StatusChangeResponse{
			FromStatus:    from,
			ToStatus:      change.To.String(),
			ChangedByRole: change.Role.String(),
			Reason:        change.Reason,
			CreatedAt:     change.At,
		})
	}
	return resp
}

func toNotificationResponse(v queries.NotificationView) NotificationResponse {
	return NotificationResponse{
		ID:           v.ID.String(),
		Type:         v.Type.String(),
		Title:        v.Title,
		Message:      v.Message,
		OrderID:      v.OrderID.String(),
		RestaurantID: optionalString(v.RestaurantID),
		IsRead:       v.IsRead,
		Metadata:     v.Metadata,
		CreatedAt:    v.CreatedAt,
	}
}
