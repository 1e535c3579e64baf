package services

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

const actionAssignRider = "assign rider"

var (
	ErrInvalidAssignmentState = errors.New("order is not in a state that accepts a rider")
	ErrInvalidRider           = errors.New("rider does not exist, is not a rider or is inactive")
)

// RiderCandidate is what the assignment rules need to know about the user
// being assigned.
type RiderCandidate struct {
	ID       kernel.UUID
	Role     actor.Role
	IsActive bool
}

// RiderAssignment sets or replaces the rider of an order.
//
// Checks run in a fixed order so that callers get the same error for the
// same situation:
//  1. the actor's role and relationship (Forbidden)
//  2. for riders, the self-assignment window: only READY_FOR_PICKUP
//     (ErrInvalidAssignmentState) and only unassigned or own orders (Forbidden)
//  3. the order's status: ACCEPTED, PREPARING or READY_FOR_PICKUP
//     (ErrInvalidAssignmentState)
//  4. the candidate: exists, holds RIDER and is active (ErrInvalidRider)
type RiderAssignment struct{}

func NewRiderAssignment() RiderAssignment {
	return RiderAssignment{}
}

// Assign applies the assignment to o and returns the displaced rider, if any.
// A nil candidate means the rider id does not resolve to a user.
func (s RiderAssignment) Assign(
	a actor.Actor,
	o *order.Order,
	ownerID kernel.UUID,
	riderID kernel.UUID,
	candidate *RiderCandidate,
	at time.Time,
) (*kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	switch a.Role() {
	case actor.Admin:
	case actor.RestaurantOwner:
		if !a.Is(ownerID) {
			return nil, errs.NewForbiddenError(actionAssignRider, "order belongs to another restaurant")
		}
	case actor.Rider:
		if !a.Is(riderID) {
			return nil, errs.NewForbiddenError(actionAssignRider, "riders can only assign themselves")
		}
		if o.Status() != order.ReadyForPickup {
			return nil, fmt.Errorf("%w: riders can only pick up orders that are %s, order is %s",
				ErrInvalidAssignmentState, order.ReadyForPickup, o.Status())
		}
		if o.HasRider() && !o.IsAssignedTo(a.ID()) {
			return nil, errs.NewForbiddenError(actionAssignRider, "order is already assigned to another rider")
		}
	case actor.Customer, actor.UnknownRole:
		return nil, errs.NewForbiddenError(actionAssignRider, "role cannot assign riders")
	}

	if !o.Status().AllowsRiderAssignment() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidAssignmentState, o.Status())
	}

	if candidate == nil || !candidate.ID.IsEqual(riderID) || candidate.Role != actor.Rider || !candidate.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRider, riderID)
	}

	previous, err := o.AssignRider(riderID, at)
	if errors.Is(err, order.ErrRiderAssignmentNotAllowed) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssignmentState, err)
	}
	if err != nil {
		return nil, err
	}
	return previous, nil
}
