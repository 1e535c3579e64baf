// Package realtime pushes stored notifications to connected users over
// WebSocket. A Hub serves the connections of one instance; a RedisRelay fans
// events out to the hubs of every instance.
package realtime

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/notification"
)

const (
	EventNotification = "notification"
	EventPing         = "ping"
	EventPong         = "pong"
)

// Event is the envelope of every frame sent over the socket.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type NotificationPayload struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	OrderID      string            `json:"orderId"`
	RestaurantID *string           `json:"restaurantId,omitempty"`
	IsRead       bool              `json:"isRead"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type pongPayload struct {
	Timestamp int64 `json:"timestamp"`
}

func encodeNotification(n *notification.Notification) ([]byte, error) {
	payload := NotificationPayload{
		ID:        n.ID().String(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		OrderID:   n.OrderID().String(),
		IsRead:    n.IsRead(),
		Metadata:  n.Metadata(),
		CreatedAt: n.CreatedAt(),
	}
	if r := n.RestaurantID(); r != nil {
		s := r.String()
		payload.RestaurantID = &s
	}
	return encodeEvent(EventNotification, payload)
}

func encodeEvent(name string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: name, Data: raw})
}
