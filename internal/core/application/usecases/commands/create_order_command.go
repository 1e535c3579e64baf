package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrInvalidLineItems = errors.New("line items are invalid")
)

// RequestedItem is one line of an order request.
type RequestedItem struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// CreateOrderCommand places a new order at a restaurant. Requested lines
// that reference the same menu item are merged by summing quantities.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, restaurantID, []RequestedItem{
//	    {MenuItemID: burgerID, Quantity: 2},
//	    {MenuItemID: friesID, Quantity: 1},
//	}, "Main st. 1")
type CreateOrderCommand struct {
	actor           actor.Actor
	restaurantID    kernel.UUID
	items           []RequestedItem
	deliveryAddress string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	a actor.Actor,
	restaurantID kernel.UUID,
	items []RequestedItem,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the merged lines in first-seen order.
func (c CreateOrderCommand) Items() []RequestedItem {
	items := make([]RequestedItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.MenuItemID)
	}
	return ids
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CreateOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Role() != actor.Customer {
		return errs.NewForbiddenError("create order", "only customers can place orders")
	}
	c.actor = a
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []RequestedItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidLineItems)
	}

	merged := make([]RequestedItem, 0, len(items))
	index := make(map[kernel.UUID]int, len(items))
	for i, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidLineItems, i, err)
		}
		if item.Quantity < 1 || item.Quantity > order.MaxQuantity {
			return fmt.Errorf("%w: item %d: quantity %d is outside [1, %d]",
				ErrInvalidLineItems, i, item.Quantity, order.MaxQuantity)
		}
		if pos, ok := index[item.MenuItemID]; ok {
			merged[pos].Quantity += item.Quantity
			if merged[pos].Quantity > order.MaxQuantity {
				return fmt.Errorf("%w: menu item %s: merged quantity %d exceeds %d",
					ErrInvalidLineItems, item.MenuItemID, merged[pos].Quantity, order.MaxQuantity)
			}
			continue
		}
		index[item.MenuItemID] = len(merged)
		merged = append(merged, item)
	}

	c.items = merged
	return nil
}
