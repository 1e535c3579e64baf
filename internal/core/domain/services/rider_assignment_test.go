package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateOf(a actor.Actor) *services.RiderCandidate {
	return &services.RiderCandidate{ID: a.ID(), Role: a.Role(), IsActive: true}
}

func TestRiderAssignment_Admin(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRiderAssignment()

	for _, s := range []order.Status{order.Accepted, order.Preparing, order.ReadyForPickup} {
		o := f.orderIn(t, s, false)

		previous, err := svc.Assign(f.admin, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())

		require.NoError(t, err, s.String())
		assert.Nil(t, previous)
		assert.True(t, o.IsAssignedTo(f.rider.ID()))
	}

	for _, s := range []order.Status{order.Pending, order.OutForDelivery, order.Delivered, order.Cancelled} {
		o := f.orderIn(t, s, false)

		_, err := svc.Assign(f.admin, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())

		require.ErrorIs(t, err, services.ErrInvalidAssignmentState, s.String())
	}
}

func TestRiderAssignment_Reassign(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRiderAssignment()
	o := f.orderIn(t, order.Preparing, true)
	other := f.stranger[actor.Rider]

	previous, err := svc.Assign(f.owner, o, f.owner.ID(), other.ID(), candidateOf(other), time.Now())

	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.True(t, previous.IsEqual(f.rider.ID()))
	assert.True(t, o.IsAssignedTo(other.ID()))
}

func TestRiderAssignment_InvalidRider(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRiderAssignment()

	cases := map[string]*services.RiderCandidate{
		"missing":   nil,
		"not rider": candidateOf(f.stranger[actor.Customer]),
		"inactive":  {ID: f.rider.ID(), Role: actor.Rider, IsActive: false},
	}
	for name, candidate := range cases {
		o := f.orderIn(t, order.Accepted, false)
		riderID := f.rider.ID()
		if candidate != nil {
			riderID = candidate.ID
		}

		_, err := svc.Assign(f.admin, o, f.owner.ID(), riderID, candidate, time.Now())

		require.ErrorIs(t, err, services.ErrInvalidRider, name)
		assert.False(t, o.HasRider(), name)
	}
}

func TestRiderAssignment_Owner(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRiderAssignment()
	o := f.orderIn(t, order.Accepted, false)

	_, err := svc.Assign(f.stranger[actor.RestaurantOwner], o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.Assign(f.owner, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())
	require.NoError(t, err)
}

func TestRiderAssignment_RiderSelfAssignment(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRiderAssignment()

	t.Run("only when ready for pickup", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Accepted, order.Preparing} {
			o := f.orderIn(t, s, false)
			_, err := svc.Assign(f.rider, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())
			require.ErrorIs(t, err, services.ErrInvalidAssignmentState, s.String())
		}

		o := f.orderIn(t, order.ReadyForPickup, false)
		_, err := svc.Assign(f.rider, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())
		require.NoError(t, err)
		assert.True(t, o.IsAssignedTo(f.rider.ID()))
	})

	t.Run("only themselves", func(t *testing.T) {
		o := f.orderIn(t, order.ReadyForPickup, false)
		other := f.stranger[actor.Rider]
		_, err := svc.Assign(f.rider, o, f.owner.ID(), other.ID(), candidateOf(other), time.Now())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("not over another rider", func(t *testing.T) {
		o := f.orderIn(t, order.ReadyForPickup, true)
		other := f.stranger[actor.Rider]
		_, err := svc.Assign(other, o, f.owner.ID(), other.ID(), candidateOf(other), time.Now())
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.True(t, o.IsAssignedTo(f.rider.ID()))
	})

	t.Run("again on own order", func(t *testing.T) {
		o := f.orderIn(t, order.ReadyForPickup, true)
		previous, err := svc.Assign(f.rider, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.True(t, previous.IsEqual(f.rider.ID()))
	})
}

func TestRiderAssignment_CustomerForbidden(t *testing.T) {
	f := newFixture(t)
	o := f.orderIn(t, order.Accepted, false)

	_, err := services.NewRiderAssignment().Assign(f.customer, o, f.owner.ID(), f.rider.ID(), candidateOf(f.rider), time.Now())

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestRiderAssignment_UnconstructedOrder(t *testing.T) {
	f := newFixture(t)

	_, err := services.NewRiderAssignment().Assign(f.admin, &order.Order{}, kernel.NewUUID(), f.rider.ID(), candidateOf(f.rider), time.Now())

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}
