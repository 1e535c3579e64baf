package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
)

const (
	defaultCustomerName = "Customer"
	defaultRiderName    = "assigned"
)

// OrderContext is the order plus the display data the texts refer to.
type OrderContext struct {
	Order          *order.Order
	OwnerID        kernel.UUID
	RestaurantName string
	CustomerName   string
	RiderName      string
}

// NotificationPlanner turns workflow events into notification intents. It
// performs no I/O; callers dispatch the intents once the change is durable.
type NotificationPlanner struct{}

func NewNotificationPlanner() NotificationPlanner {
	return NotificationPlanner{}
}

// OrderCreated notifies the restaurant owner and the customer.
func (p NotificationPlanner) OrderCreated(c OrderContext) []notification.Intent {
	o := c.Order
	customerName := c.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}

	return []notification.Intent{
		p.intent(c, c.OwnerID, notification.OrderCreated, "New Order Received",
			fmt.Sprintf("New order #%s received from %s", o.ID().Short(), customerName),
			map[string]string{"customerName": customerName}),
		p.intent(c, o.CustomerID(), notification.OrderCreated, "Order Placed",
			fmt.Sprintf("Your order #%s has been placed at %s", o.ID().Short(), c.RestaurantName),
			map[string]string{"restaurantName": c.RestaurantName}),
	}
}

// StatusChanged returns the intents for a committed status change made by a.
// Recipients per target status:
//
//	ACCEPTED          customer
//	PREPARING         customer
//	READY_FOR_PICKUP  customer, assigned rider
//	OUT_FOR_DELIVERY  customer
//	DELIVERED         customer, restaurant owner
//	CANCELLED         customer, restaurant owner, assigned rider; never the actor
func (p NotificationPlanner) StatusChanged(c OrderContext, change order.StatusChange, a actor.Actor) []notification.Intent {
	o := c.Order
	short := o.ID().Short()

	switch change.To() {
	case order.Accepted:
		return []notification.Intent{
			p.intent(c, o.CustomerID(), notification.OrderAccepted, "Order Accepted",
				fmt.Sprintf("Your order #%s has been accepted by %s", short, c.RestaurantName), nil),
		}

	case order.Preparing:
		return []notification.Intent{
			p.intent(c, o.CustomerID(), notification.OrderPrepared, "Order Being Prepared",
				fmt.Sprintf("Your order #%s is being prepared at %s", short, c.RestaurantName), nil),
		}

	case order.ReadyForPickup:
		intents := []notification.Intent{
			p.intent(c, o.CustomerID(), notification.OrderPrepared, "Order Ready",
				fmt.Sprintf("Your order #%s is ready for pickup from %s", short, c.RestaurantName), nil),
		}
		if rider := o.RiderID(); rider != nil {
			intents = append(intents, p.intent(c, *rider, notification.OrderPrepared, "Order Ready for Pickup",
				fmt.Sprintf("Order #%s is ready for pickup at %s", short, c.RestaurantName), nil))
		}
		return intents

	case order.OutForDelivery:
		var meta map[string]string
		if c.RiderName != "" {
			meta = map[string]string{"riderName": c.RiderName}
		}
		return []notification.Intent{
			p.intent(c, o.CustomerID(), notification.OrderPickedUp, "Order Picked Up",
				fmt.Sprintf("Your order #%s has been picked up and is out for delivery", short), meta),
		}

	case order.Delivered:
		return []notification.Intent{
			p.intent(c, o.CustomerID(), notification.OrderDelivered, "Order Delivered",
				fmt.Sprintf("Your order #%s has been delivered successfully", short), nil),
			p.intent(c, c.OwnerID, notification.OrderDelivered, "Order Delivered",
				fmt.Sprintf("Order #%s has been delivered successfully", short), nil),
		}

	case order.Cancelled:
		return p.cancelled(c, change.Reason(), a)

	case order.Unknown, order.Pending:
	}
	return nil
}

func (p NotificationPlanner) cancelled(c OrderContext, reason string, a actor.Actor) []notification.Intent {
	o := c.Order
	short := o.ID().Short()

	var intents []notification.Intent
	if !a.Is(o.CustomerID()) {
		msg := fmt.Sprintf("Order #%s has been cancelled", short)
		if reason != "" {
			msg += ": " + reason
		}
		intents = append(intents, p.intent(c, o.CustomerID(), notification.OrderCancelled, "Order Cancelled", msg, nil))
	}
	if !a.Is(c.OwnerID) {
		intents = append(intents, p.intent(c, c.OwnerID, notification.OrderCancelled, "Order Cancelled",
			fmt.Sprintf("Order #%s has been cancelled", short), nil))
	}
	if rider := o.RiderID(); rider != nil && !a.Is(*rider) {
		intents = append(intents, p.intent(c, *rider, notification.OrderCancelled, "Order Cancelled",
			fmt.Sprintf("Order #%s has been cancelled", short), nil))
	}
	return intents
}

// RiderAssigned returns the intents for a committed assignment. c.Order
// already carries the new rider and c.RiderName is the new rider's name.
func (p NotificationPlanner) RiderAssigned(c OrderContext, previousRiderID *kernel.UUID, a actor.Actor) []notification.Intent {
	o := c.Order
	riderID := o.RiderID()
	if riderID == nil {
		return nil
	}
	short := o.ID().Short()
	riderName := c.RiderName
	if riderName == "" {
		riderName = defaultRiderName
	}
	assignedMsg := fmt.Sprintf("Rider %s will deliver your order #%s", riderName, short)

	intents := []notification.Intent{
		p.intent(c, *riderID, notification.RiderAssigned, "Rider Assigned", assignedMsg,
			map[string]string{"customerName": c.CustomerName, "restaurantName": c.RestaurantName}),
		p.intent(c, o.CustomerID(), notification.RiderAssigned, "Rider Assigned", assignedMsg,
			map[string]string{"riderName": c.RiderName}),
	}
	if !a.Is(c.OwnerID) {
		intents = append(intents, p.intent(c, c.OwnerID, notification.RiderAssigned, "Rider Assigned",
			fmt.Sprintf("Rider %s has been assigned to order #%s", riderName, short),
			map[string]string{"riderName": c.RiderName}))
	}
	if previousRiderID != nil && !previousRiderID.IsEqual(*riderID) && !a.Is(*previousRiderID) {
		intents = append(intents, p.intent(c, *previousRiderID, notification.OrderCancelled, "Order Reassigned",
			fmt.Sprintf("Order #%s has been reassigned to another rider", short), nil))
	}
	return intents
}

func (p NotificationPlanner) intent(
	c OrderContext,
	recipient kernel.UUID,
	typ notification.Type,
	title, message string,
	meta map[string]string,
) notification.Intent {
	restaurantID := c.Order.RestaurantID()
	return notification.Intent{
		RecipientID:  recipient,
		Type:         typ,
		Title:        title,
		Message:      message,
		OrderID:      c.Order.ID(),
		RestaurantID: &restaurantID,
		Metadata:     meta,
	}
}
