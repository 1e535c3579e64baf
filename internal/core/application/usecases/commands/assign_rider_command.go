package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand sets or replaces the rider of an order.
type AssignRiderCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(a actor.Actor, orderID, riderID kernel.UUID) (AssignRiderCommand, error) {
	var orderErr, riderErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if err := riderID.Validate(); err != nil {
		riderErr = errs.NewValueIsRequiredErrorWithCause("riderID", err)
	}
	if err := errors.Join(a.Validate(), orderErr, riderErr); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		actor:   a,
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) Actor() actor.Actor {
	return c.actor
}

func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}
