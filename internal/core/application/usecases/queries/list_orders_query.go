package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to the actor, newest first. Both
// filters are optional.
type ListOrdersQuery struct {
	actor        actor.Actor
	status       *order.Status
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(a actor.Actor, status *order.Status, restaurantID *kernel.UUID) (ListOrdersQuery, error) {
	var statusErr, restaurantErr error
	if status != nil {
		statusErr = status.Validate()
	}
	if restaurantID != nil {
		restaurantErr = restaurantID.Validate()
	}
	if err := errors.Join(a.Validate(), statusErr, restaurantErr); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}
	if status != nil {
		s := *status
		q.status = &s
	}
	if restaurantID != nil {
		r := *restaurantID
		q.restaurantID = &r
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() actor.Actor {
	return q.actor
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}
