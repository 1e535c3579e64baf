// Package notificationrepo stores inbox entries.
package notificationrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID  uuid.UUID `gorm:"type:uuid;index"`
	Type         string
	Title        string
	Message      string
	OrderID      uuid.UUID  `gorm:"type:uuid"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
	IsRead       bool
	Metadata     string
	CreatedAt    time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	var restaurantID *uuid.UUID
	if id := n.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	meta, err := json.Marshal(n.Metadata())
	if err != nil {
		return NotificationDTO{}, pkgerrors.Wrap(err, "encode notification metadata")
	}

	return NotificationDTO{
		ID:           n.ID().Bytes(),
		RecipientID:  n.RecipientID().Bytes(),
		Type:         n.Type().String(),
		Title:        n.Title(),
		Message:      n.Message(),
		OrderID:      n.OrderID().Bytes(),
		RestaurantID: restaurantID,
		IsRead:       n.IsRead(),
		Metadata:     string(meta),
		CreatedAt:    n.CreatedAt(),
	}, nil
}

// ToDomain is exported for the read side.
func ToDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if rErr != nil {
			return nil, rErr
		}
		restaurantID = &rID
	}

	typ, err := notification.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	var meta map[string]string
	if dto.Metadata != "" {
		if err = json.Unmarshal([]byte(dto.Metadata), &meta); err != nil {
			return nil, pkgerrors.Wrapf(err, "decode metadata of notification %s", id)
		}
	}

	return notification.RestoreNotification(id, recipientID, typ, dto.Title, dto.Message,
		orderID, restaurantID, dto.IsRead, meta, dto.CreatedAt)
}
