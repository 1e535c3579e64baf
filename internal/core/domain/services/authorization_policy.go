package services

import (
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

const (
	actionChangeStatus = "change order status"
	actionViewOrder    = "view order"
)

// OrderParties are the users related to an order. Restaurant ownership is not
// stored on the order, so the owner is resolved by the caller.
type OrderParties struct {
	CustomerID kernel.UUID
	OwnerID    kernel.UUID
	RiderID    *kernel.UUID
}

func PartiesOf(o *order.Order, ownerID kernel.UUID) OrderParties {
	return OrderParties{CustomerID: o.CustomerID(), OwnerID: ownerID, RiderID: o.RiderID()}
}

func (p OrderParties) hasRider(id kernel.UUID) bool {
	return p.RiderID != nil && p.RiderID.IsEqual(id)
}

// AuthorizationPolicy decides who may change an order's status and who may
// see an order.
//
// Status changes:
//   - the transition graph is checked first; an illegal edge is never
//     reported as Forbidden
//   - ADMIN may request any legal transition
//   - CUSTOMER may only cancel their own order while it is PENDING or ACCEPTED
//   - RESTAURANT_OWNER may request any legal transition except OUT_FOR_DELIVERY
//     and DELIVERED, on orders of restaurants they own
//   - RIDER may only request OUT_FOR_DELIVERY and DELIVERED, on orders
//     assigned to them
type AuthorizationPolicy struct{}

func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{}
}

// AuthorizeStatusChange returns nil, an order.InvalidTransitionError or an
// errs.ForbiddenError.
func (p AuthorizationPolicy) AuthorizeStatusChange(
	a actor.Actor,
	o *order.Order,
	ownerID kernel.UUID,
	requested order.Status,
) error {
	if err := order.ValidateTransition(o.Status(), requested); err != nil {
		return err
	}

	switch a.Role() {
	case actor.Admin:
		return nil

	case actor.Customer:
		if requested != order.Cancelled {
			return errs.NewForbiddenError(actionChangeStatus, "customers can only cancel orders")
		}
		if o.Status() != order.Pending && o.Status() != order.Accepted {
			return errs.NewForbiddenError(actionChangeStatus, "order can no longer be cancelled by the customer")
		}
		if !o.IsPlacedBy(a.ID()) {
			return errs.NewForbiddenError(actionChangeStatus, "order belongs to another customer")
		}
		return nil

	case actor.RestaurantOwner:
		if requested == order.OutForDelivery || requested == order.Delivered {
			return errs.NewForbiddenError(actionChangeStatus, "delivery statuses are set by the rider")
		}
		if !a.Is(ownerID) {
			return errs.NewForbiddenError(actionChangeStatus, "order belongs to another restaurant")
		}
		return nil

	case actor.Rider:
		if requested != order.OutForDelivery && requested != order.Delivered {
			return errs.NewForbiddenError(actionChangeStatus, "riders can only set delivery statuses")
		}
		if !o.IsAssignedTo(a.ID()) {
			return errs.NewForbiddenError(actionChangeStatus, "order is not assigned to this rider")
		}
		return nil

	case actor.UnknownRole:
	}
	return errs.NewForbiddenError(actionChangeStatus, "unknown role")
}

// CanView returns nil when the actor may read the order: customers their
// own orders, owners orders of their restaurants, riders orders assigned to
// them, admins everything.
func (p AuthorizationPolicy) CanView(a actor.Actor, parties OrderParties) error {
	switch a.Role() {
	case actor.Admin:
		return nil
	case actor.Customer:
		if a.Is(parties.CustomerID) {
			return nil
		}
	case actor.RestaurantOwner:
		if a.Is(parties.OwnerID) {
			return nil
		}
	case actor.Rider:
		if parties.hasRider(a.ID()) {
			return nil
		}
	case actor.UnknownRole:
	}
	return errs.NewForbiddenError(actionViewOrder, "order is not visible to this user")
}
