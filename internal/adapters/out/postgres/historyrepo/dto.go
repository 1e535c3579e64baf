// Package historyrepo stores the append-only order status history.
package historyrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type StatusChangeDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq           int64     `gorm:"->"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	FromStatus    *string
	ToStatus      string
	ChangedByRole string
	Reason        string
	CreatedAt     time.Time
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(c order.StatusChange) StatusChangeDTO {
	var from *string
	if c.From() != nil {
		s := c.From().String()
		from = &s
	}
	return StatusChangeDTO{
		ID:            c.ID().Bytes(),
		OrderID:       c.OrderID().Bytes(),
		FromStatus:    from,
		ToStatus:      c.To().String(),
		ChangedByRole: c.Role().String(),
		Reason:        c.Reason(),
		CreatedAt:     c.At(),
	}
}

// ToDomain is exported for the read side.
func ToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	var from *order.Status
	if dto.FromStatus != nil {
		s, parseErr := order.ParseStatus(*dto.FromStatus)
		if parseErr != nil {
			return order.StatusChange{}, parseErr
		}
		from = &s
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.StatusChange{}, err
	}
	role, err := actor.ParseRole(dto.ChangedByRole)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.RestoreStatusChange(id, orderID, from, to, role, dto.Reason, dto.CreatedAt)
}
