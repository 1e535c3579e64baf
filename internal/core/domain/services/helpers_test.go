package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	customer actor.Actor
	owner    actor.Actor
	rider    actor.Actor
	admin    actor.Actor
	stranger map[actor.Role]actor.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mk := func(role actor.Role) actor.Actor {
		a, err := actor.New(kernel.NewUUID(), role)
		require.NoError(t, err)
		return a
	}
	return fixture{
		customer: mk(actor.Customer),
		owner:    mk(actor.RestaurantOwner),
		rider:    mk(actor.Rider),
		admin:    mk(actor.Admin),
		stranger: map[actor.Role]actor.Actor{
			actor.Customer:        mk(actor.Customer),
			actor.RestaurantOwner: mk(actor.RestaurantOwner),
			actor.Rider:           mk(actor.Rider),
		},
	}
}

// orderIn builds an order placed by f.customer and walks it to status. When
// withRider is set, f.rider is assigned as soon as the status allows it.
func (f fixture) orderIn(t *testing.T, status order.Status, withRider bool) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(1000)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Burger", price, 2)
	require.NoError(t, err)

	o, _, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), kernel.NewUUID(),
		[]order.LineItem{item}, "", actor.Customer, time.Now())
	require.NoError(t, err)

	path := []order.Status{order.Accepted, order.Preparing, order.ReadyForPickup, order.OutForDelivery, order.Delivered}
	if status == order.Cancelled {
		_, err = o.ChangeStatus(order.Cancelled, actor.Admin, "", time.Now())
		require.NoError(t, err)
		return o
	}
	for _, next := range path {
		if o.Status() == status {
			break
		}
		_, err = o.ChangeStatus(next, actor.Admin, "", time.Now())
		require.NoError(t, err)
		if withRider && o.Status() == order.Accepted {
			_, err = o.AssignRider(f.rider.ID(), time.Now())
			require.NoError(t, err)
		}
	}
	require.Equal(t, status, o.Status())
	return o
}
