package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrRiderAssignmentNotAllowed is returned by AssignRider when the order's
	// status does not accept a rider.
	ErrRiderAssignmentNotAllowed = errors.New("rider cannot be assigned in the current status")
)

// Order is the aggregate root of the workflow. It owns its line items, its
// status and its rider reference.
//
// Invariants:
//   - at least one line item, every quantity >= 1
//   - total equals the sum of line totals and never changes after creation
//   - status only moves along the edges accepted by ValidateTransition
//   - version is the optimistic-concurrency token of the persisted row
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	riderID         *kernel.UUID
	items           []LineItem
	total           kernel.Money
	status          Status
	deliveryAddress string
	createdAt       time.Time
	updatedAt       time.Time
	version         int

	isConstructed bool
}

// NewOrder creates a Pending order and returns the history entry that records
// its creation by the given role.
//
// Example:
//
//	burger, _ := order.NewLineItem(burgerID, "Burger", tenDollars, 2)
//	o, created, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID,
//	    []order.LineItem{burger}, "Main st. 1", actor.Customer, time.Now())
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	items []LineItem,
	deliveryAddress string,
	createdBy actor.Role,
	now time.Time,
) (*Order, StatusChange, error) {
	o := &Order{
		status:          Pending,
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setIDs(id, customerID, restaurantID),
		o.setItems(items),
		createdBy.Validate(),
	); err != nil {
		return nil, StatusChange{}, err
	}
	total, err := sumLineTotals(o.items)
	if err != nil {
		return nil, StatusChange{}, err
	}
	o.total = total

	return o, newStatusChange(o.id, nil, Pending, createdBy, "", now), nil
}

// RestoreOrder rebuilds an order from storage. The persisted total must match
// the persisted line items.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	riderID *kernel.UUID,
	items []LineItem,
	total kernel.Money,
	status Status,
	deliveryAddress string,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		status:          status,
		deliveryAddress: deliveryAddress,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		version:         version,
		isConstructed:   true,
	}

	var riderErr error
	if riderID != nil {
		riderErr = riderID.Validate()
		rider := *riderID
		o.riderID = &rider
	}

	if err := errors.Join(
		o.setIDs(id, customerID, restaurantID),
		o.setItems(items),
		status.Validate(),
		total.Validate(),
		riderErr,
	); err != nil {
		return nil, err
	}

	sum, err := sumLineTotals(o.items)
	if err != nil {
		return nil, err
	}
	if !sum.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("stored total %s differs from line items sum %s", total, sum))
	}
	o.total = total

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RiderID returns nil while no rider is assigned.
func (o *Order) RiderID() *kernel.UUID {
	if o.riderID == nil {
		return nil
	}
	id := *o.riderID
	return &id
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the version this aggregate was loaded with. Repositories use it
// as the expected value of the compare-and-swap on update.
func (o *Order) Version() int {
	return o.version
}

func (o *Order) IsPlacedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsAssignedTo reports whether riderID is the current rider.
func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

func (o *Order) HasRider() bool {
	return o.riderID != nil
}

// ChangeStatus moves the order along a graph edge and returns the history
// entry describing the move. Who may request the move is decided outside of
// the aggregate.
func (o *Order) ChangeStatus(to Status, by actor.Role, reason string, at time.Time) (StatusChange, error) {
	if err := by.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := ValidateTransition(o.status, to); err != nil {
		return StatusChange{}, err
	}

	from := o.status
	o.status = to
	o.updatedAt = at

	return newStatusChange(o.id, &from, to, by, strings.TrimSpace(reason), at), nil
}

// AssignRider replaces the rider reference and returns the displaced rider,
// if any. Re-assigning the current rider is allowed and returns it as the
// previous one.
func (o *Order) AssignRider(riderID kernel.UUID, at time.Time) (*kernel.UUID, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}
	if !o.status.AllowsRiderAssignment() {
		return nil, fmt.Errorf("%w: %s", ErrRiderAssignmentNotAllowed, o.status)
	}

	previous := o.RiderID()
	o.riderID = &riderID
	o.updatedAt = at
	return previous, nil
}

func (o *Order) setIDs(id, customerID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func sumLineTotals(items []LineItem) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, item := range items {
		next, err := total.Add(item.LineTotal())
		if err != nil {
			return kernel.Money{}, errs.NewValueIsOutOfRangeErrorWithCause("total", total, 0, "max int64 cents", err)
		}
		total = next
	}
	return total, nil
}
