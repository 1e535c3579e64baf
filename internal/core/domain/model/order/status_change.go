package order

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created by the order or via RestoreStatusChange")

// StatusChange is one append-only history entry. From is nil for the entry
// written when the order is created.
type StatusChange struct {
	id      kernel.UUID
	orderID kernel.UUID
	from    *Status
	to      Status
	role    actor.Role
	reason  string
	at      time.Time
	guard   guard.ConstructorGuard
}

// RestoreStatusChange rebuilds a history entry read from storage.
func RestoreStatusChange(
	id, orderID kernel.UUID,
	from *Status,
	to Status,
	role actor.Role,
	reason string,
	at time.Time,
) (StatusChange, error) {
	var fromErr error
	if from != nil {
		fromErr = from.Validate()
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), fromErr, to.Validate(), role.Validate()); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{
		id:      id,
		orderID: orderID,
		from:    from,
		to:      to,
		role:    role,
		reason:  reason,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func newStatusChange(orderID kernel.UUID, from *Status, to Status, role actor.Role, reason string, at time.Time) StatusChange {
	return StatusChange{
		id:      kernel.NewUUID(),
		orderID: orderID,
		from:    from,
		to:      to,
		role:    role,
		reason:  reason,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c StatusChange) ID() kernel.UUID {
	return c.id
}

func (c StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

func (c StatusChange) From() *Status {
	return c.from
}

func (c StatusChange) To() Status {
	return c.to
}

func (c StatusChange) Role() actor.Role {
	return c.role
}

func (c StatusChange) Reason() string {
	return c.reason
}

func (c StatusChange) At() time.Time {
	return c.at
}

func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}
