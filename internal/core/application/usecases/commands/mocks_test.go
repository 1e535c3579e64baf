package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// detached matches the context handed to work that runs after commit: it
// carries the request values but is never cancelled.
var detached = mock.MatchedBy(func(ctx context.Context) bool { return ctx.Done() == nil })

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) FindByID(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Restaurant), args.Error(1)
}

func (m *MockCatalog) FindMenuItems(ctx context.Context, restaurantID kernel.UUID, ids []kernel.UUID) ([]ports.MenuItem, error) {
	args := m.Called(ctx, restaurantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MenuItem), args.Error(1)
}

func (m *MockCatalog) ListOwnedBy(ctx context.Context, ownerID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) FindByID(ctx context.Context, id kernel.UUID) (ports.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.User), args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, intents []notification.Intent) []*notification.Notification {
	args := m.Called(ctx, intents)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*notification.Notification)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, recipientID, id kernel.UUID) error {
	args := m.Called(ctx, recipientID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.New(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

// storedOrder rebuilds an order as the repository would return it.
func storedOrder(t *testing.T, status order.Status, customerID, restaurantID kernel.UUID, riderID *kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Burger", money(t, 1000), 2)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), customerID, restaurantID, riderID,
		[]order.LineItem{item}, money(t, 2000), status, "", time.Now(), time.Now(), 1)
	require.NoError(t, err)
	return o
}

// sameOrder restores another copy of o, as a fresh Get after a lost race would.
func sameOrder(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	cp, err := order.RestoreOrder(o.ID(), o.CustomerID(), o.RestaurantID(), o.RiderID(),
		o.Items(), o.Total(), o.Status(), o.DeliveryAddress(), o.CreatedAt(), o.UpdatedAt(), o.Version()+1)
	require.NoError(t, err)
	return cp
}

func intentsFor(recipients ...kernel.UUID) any {
	return mock.MatchedBy(func(intents []notification.Intent) bool {
		if len(intents) != len(recipients) {
			return false
		}
		for i, intent := range intents {
			if !intent.RecipientID.IsEqual(recipients[i]) {
				return false
			}
		}
		return true
	})
}
