package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests that an order move to a new status. The
// reason is optional and is kept on the history entry.
type ChangeOrderStatusCommand struct {
	actor     actor.Actor
	orderID   kernel.UUID
	requested order.Status
	reason    string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	a actor.Actor,
	orderID kernel.UUID,
	requested order.Status,
	reason string,
) (ChangeOrderStatusCommand, error) {
	var orderErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if err := errors.Join(a.Validate(), orderErr, requested.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		actor:     a,
		orderID:   orderID,
		requested: requested,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Requested() order.Status {
	return c.requested
}

func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}
