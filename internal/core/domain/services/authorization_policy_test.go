package services_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeStatusChange_GraphComesFirst(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()

	for _, a := range []actor.Actor{f.customer, f.owner, f.rider, f.admin} {
		o := f.orderIn(t, order.Pending, false)

		err := policy.AuthorizeStatusChange(a, o, f.owner.ID(), order.Delivered)

		require.ErrorIs(t, err, order.ErrInvalidTransition, a.Role().String())
		assert.NotErrorIs(t, err, errs.ErrForbidden)
	}
}

func TestAuthorizeStatusChange_Admin(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			if order.ValidateTransition(from, to) != nil {
				continue
			}
			o := f.orderIn(t, from, true)
			require.NoError(t, policy.AuthorizeStatusChange(f.admin, o, f.owner.ID(), to), "%s -> %s", from, to)
		}
	}
}

func TestAuthorizeStatusChange_Customer(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()

	t.Run("may cancel own order while pending or accepted", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Accepted} {
			o := f.orderIn(t, s, false)
			require.NoError(t, policy.AuthorizeStatusChange(f.customer, o, f.owner.ID(), order.Cancelled))
		}
	})

	t.Run("may not cancel once preparing", func(t *testing.T) {
		for _, s := range []order.Status{order.Preparing, order.ReadyForPickup, order.OutForDelivery} {
			o := f.orderIn(t, s, false)
			err := policy.AuthorizeStatusChange(f.customer, o, f.owner.ID(), order.Cancelled)
			require.ErrorIs(t, err, errs.ErrForbidden, s.String())
		}
	})

	t.Run("may not cancel someone else's order", func(t *testing.T) {
		o := f.orderIn(t, order.Pending, false)
		err := policy.AuthorizeStatusChange(f.stranger[actor.Customer], o, f.owner.ID(), order.Cancelled)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("may not accept", func(t *testing.T) {
		o := f.orderIn(t, order.Pending, false)
		err := policy.AuthorizeStatusChange(f.customer, o, f.owner.ID(), order.Accepted)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestAuthorizeStatusChange_Owner(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()

	allowed := map[order.Status]order.Status{
		order.Pending:        order.Accepted,
		order.Accepted:       order.Preparing,
		order.Preparing:      order.ReadyForPickup,
		order.ReadyForPickup: order.Cancelled,
	}
	for from, to := range allowed {
		o := f.orderIn(t, from, false)
		require.NoError(t, policy.AuthorizeStatusChange(f.owner, o, f.owner.ID(), to), "%s -> %s", from, to)

		err := policy.AuthorizeStatusChange(f.stranger[actor.RestaurantOwner], o, f.owner.ID(), to)
		require.ErrorIs(t, err, errs.ErrForbidden)
	}

	o := f.orderIn(t, order.ReadyForPickup, true)
	require.ErrorIs(t, policy.AuthorizeStatusChange(f.owner, o, f.owner.ID(), order.OutForDelivery), errs.ErrForbidden)

	o = f.orderIn(t, order.OutForDelivery, true)
	require.ErrorIs(t, policy.AuthorizeStatusChange(f.owner, o, f.owner.ID(), order.Delivered), errs.ErrForbidden)
}

func TestAuthorizeStatusChange_Rider(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()

	ready := f.orderIn(t, order.ReadyForPickup, true)
	require.NoError(t, policy.AuthorizeStatusChange(f.rider, ready, f.owner.ID(), order.OutForDelivery))
	require.ErrorIs(t, policy.AuthorizeStatusChange(f.rider, ready, f.owner.ID(), order.Cancelled), errs.ErrForbidden)
	require.ErrorIs(t,
		policy.AuthorizeStatusChange(f.stranger[actor.Rider], ready, f.owner.ID(), order.OutForDelivery),
		errs.ErrForbidden)

	unassigned := f.orderIn(t, order.ReadyForPickup, false)
	require.ErrorIs(t, policy.AuthorizeStatusChange(f.rider, unassigned, f.owner.ID(), order.OutForDelivery),
		errs.ErrForbidden)

	onTheWay := f.orderIn(t, order.OutForDelivery, true)
	require.NoError(t, policy.AuthorizeStatusChange(f.rider, onTheWay, f.owner.ID(), order.Delivered))
}

func TestCanView(t *testing.T) {
	f := newFixture(t)
	policy := services.NewAuthorizationPolicy()
	o := f.orderIn(t, order.Preparing, true)
	parties := services.PartiesOf(o, f.owner.ID())

	for _, a := range []actor.Actor{f.customer, f.owner, f.rider, f.admin} {
		require.NoError(t, policy.CanView(a, parties), a.Role().String())
	}
	for _, a := range f.stranger {
		require.ErrorIs(t, policy.CanView(a, parties), errs.ErrForbidden, a.Role().String())
	}
}
