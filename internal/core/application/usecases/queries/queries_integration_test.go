package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/historyrepo"
	"fooddelivery/internal/adapters/out/postgres/notificationrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database

	orders        *orderrepo.GormOrderRepository
	history       *historyrepo.GormStatusHistoryRepository
	notifications *notificationrepo.GormNotificationRepository

	customer, otherCustomer   actor.Actor
	owner, otherOwner         actor.Actor
	rider, otherRider, admin  actor.Actor
	restaurantID, otherRestID kernel.UUID
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.orders = orderrepo.NewGormOrderRepository(pg.DB)
	suite.history = historyrepo.NewGormStatusHistoryRepository(pg.DB)
	suite.notifications = notificationrepo.NewGormNotificationRepository(pg.DB)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())

	suite.customer = suite.seedActor("Alice", actor.Customer)
	suite.otherCustomer = suite.seedActor("Carol", actor.Customer)
	suite.owner = suite.seedActor("Olga", actor.RestaurantOwner)
	suite.otherOwner = suite.seedActor("Oscar", actor.RestaurantOwner)
	suite.rider = suite.seedActor("Bob", actor.Rider)
	suite.otherRider = suite.seedActor("Ben", actor.Rider)
	suite.admin = suite.seedActor("Root", actor.Admin)

	var err error
	suite.restaurantID, err = suite.pg.SeedRestaurant(suite.owner.ID(), "Burger Place", true)
	suite.Require().NoError(err)
	suite.otherRestID, err = suite.pg.SeedRestaurant(suite.otherOwner.ID(), "Noodle Bar", true)
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) seedActor(name string, role actor.Role) actor.Actor {
	id, err := suite.pg.SeedUser(name, role, true)
	suite.Require().NoError(err)
	a, err := actor.New(id, role)
	suite.Require().NoError(err)
	return a
}

// placeOrder stores an order and walks it to the given statuses, recording
// every change in the history.
func (suite *QueriesIntegrationTestSuite) placeOrder(
	customer actor.Actor,
	restaurantID kernel.UUID,
	createdAt time.Time,
	rider *kernel.UUID,
	walk ...order.Status,
) *order.Order {
	ctx := context.Background()

	price, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Burger", price, 2)
	suite.Require().NoError(err)

	o, created, err := order.NewOrder(kernel.NewUUID(), customer.ID(), restaurantID,
		[]order.LineItem{item}, "Main st. 1", actor.Customer, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))
	suite.Require().NoError(suite.history.Append(ctx, created))

	for i, next := range walk {
		at := createdAt.Add(time.Duration(i+1) * time.Minute)
		change, changeErr := o.ChangeStatus(next, actor.Admin, "", at)
		suite.Require().NoError(changeErr)
		if rider != nil && o.Status().AllowsRiderAssignment() && !o.HasRider() {
			_, changeErr = o.AssignRider(*rider, at)
			suite.Require().NoError(changeErr)
		}
		suite.Require().NoError(suite.orders.Update(ctx, o))
		suite.Require().NoError(suite.history.Append(ctx, change))

		o, err = suite.orders.Get(ctx, o.ID())
		suite.Require().NoError(err)
	}
	return o
}

func (suite *QueriesIntegrationTestSuite) getOrder(a actor.Actor, id kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(a, id)
	suite.Require().NoError(err)
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB, catalogrepo.NewGormRestaurantCatalog(suite.pg.DB))
	return handler.Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) listOrders(
	a actor.Actor,
	status *order.Status,
	restaurantID *kernel.UUID,
) ([]queries.OrderView, error) {
	query, err := queries.NewListOrdersQuery(a, status, restaurantID)
	suite.Require().NoError(err)
	handler := queries.NewListOrdersQueryHandler(suite.pg.DB, catalogrepo.NewGormRestaurantCatalog(suite.pg.DB))
	return handler.Handle(context.Background(), query)
}

func ids(views []queries.OrderView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID.String())
	}
	return out
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsItemsAndHistoryOldestFirst() {
	rider := suite.rider.ID()
	o := suite.placeOrder(suite.customer, suite.restaurantID, time.Now().UTC(), &rider,
		order.Accepted, order.Preparing)

	view, err := suite.getOrder(suite.customer, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Preparing, view.Status)
	suite.Equal("20.00", view.Total.String())
	suite.Require().NotNil(view.RiderID)
	suite.True(view.RiderID.IsEqual(rider))
	suite.Require().Len(view.Items, 1)
	suite.Equal("Burger", view.Items[0].Name)
	suite.Equal("20.00", view.Items[0].LineTotal.String())

	suite.Require().Len(view.History, 3)
	suite.Nil(view.History[0].From)
	suite.Equal(order.Pending, view.History[0].To)
	suite.Equal(actor.Customer, view.History[0].Role)
	for i := 1; i < len(view.History); i++ {
		suite.Require().NotNil(view.History[i].From)
		suite.Equal(view.History[i-1].To, *view.History[i].From)
	}
	suite.Equal(order.Preparing, view.History[2].To)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Visibility() {
	rider := suite.rider.ID()
	o := suite.placeOrder(suite.customer, suite.restaurantID, time.Now().UTC(), &rider, order.Accepted)

	for _, a := range []actor.Actor{suite.customer, suite.owner, suite.rider, suite.admin} {
		_, err := suite.getOrder(a, o.ID())
		suite.Require().NoError(err, a.Role().String())
	}
	for _, a := range []actor.Actor{suite.otherCustomer, suite.otherOwner, suite.otherRider} {
		_, err := suite.getOrder(a, o.ID())
		suite.Require().ErrorIs(err, errs.ErrForbidden, a.Role().String())
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_MissingOrDeleted_IsNotFound() {
	_, err := suite.getOrder(suite.admin, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	o := suite.placeOrder(suite.customer, suite.restaurantID, time.Now().UTC(), nil)
	suite.Require().NoError(suite.pg.DB.Delete(&orderrepo.OrderDTO{}, "id = ?", o.ID().Bytes()).Error)

	_, err = suite.getOrder(suite.admin, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Customer_SeesOwnNewestFirst() {
	base := time.Now().UTC().Add(-time.Hour)
	older := suite.placeOrder(suite.customer, suite.restaurantID, base, nil)
	newer := suite.placeOrder(suite.customer, suite.otherRestID, base.Add(10*time.Minute), nil, order.Accepted)
	suite.placeOrder(suite.otherCustomer, suite.restaurantID, base, nil)

	views, err := suite.listOrders(suite.customer, nil, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{newer.ID().String(), older.ID().String()}, ids(views))
	suite.Len(views[0].Items, 1)
	suite.Empty(views[0].History)

	accepted := order.Accepted
	views, err = suite.listOrders(suite.customer, &accepted, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{newer.ID().String()}, ids(views))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Owner() {
	now := time.Now().UTC()
	mine := suite.placeOrder(suite.customer, suite.restaurantID, now, nil)
	suite.placeOrder(suite.customer, suite.otherRestID, now, nil)

	views, err := suite.listOrders(suite.owner, nil, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{mine.ID().String()}, ids(views))

	views, err = suite.listOrders(suite.owner, nil, &suite.restaurantID)
	suite.Require().NoError(err)
	suite.Len(views, 1)

	_, err = suite.listOrders(suite.owner, nil, &suite.otherRestID)
	suite.Require().ErrorIs(err, errs.ErrForbidden)

	landlord := suite.seedActor("Nobody", actor.RestaurantOwner)
	views, err = suite.listOrders(landlord, nil, nil)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Rider() {
	now := time.Now().UTC()
	mine := suite.rider.ID()
	theirs := suite.otherRider.ID()

	unassigned := suite.placeOrder(suite.customer, suite.restaurantID, now, nil,
		order.Accepted, order.Preparing, order.ReadyForPickup)
	assignedToMe := suite.placeOrder(suite.customer, suite.restaurantID, now.Add(time.Minute), &mine,
		order.Accepted, order.Preparing, order.ReadyForPickup)
	suite.placeOrder(suite.customer, suite.restaurantID, now.Add(2*time.Minute), &theirs,
		order.Accepted, order.Preparing, order.ReadyForPickup)
	delivering := suite.placeOrder(suite.customer, suite.restaurantID, now.Add(3*time.Minute), &mine,
		order.Accepted, order.Preparing, order.ReadyForPickup, order.OutForDelivery)

	ready := order.ReadyForPickup
	views, err := suite.listOrders(suite.rider, &ready, nil)
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{unassigned.ID().String(), assignedToMe.ID().String()}, ids(views))

	views, err = suite.listOrders(suite.rider, nil, nil)
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{assignedToMe.ID().String(), delivering.ID().String()}, ids(views))

	out := order.OutForDelivery
	views, err = suite.listOrders(suite.rider, &out, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{delivering.ID().String()}, ids(views))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Admin_FiltersByRestaurant() {
	now := time.Now().UTC()
	suite.placeOrder(suite.customer, suite.restaurantID, now, nil)
	other := suite.placeOrder(suite.otherCustomer, suite.otherRestID, now, nil)

	views, err := suite.listOrders(suite.admin, nil, nil)
	suite.Require().NoError(err)
	suite.Len(views, 2)

	views, err = suite.listOrders(suite.admin, nil, &suite.otherRestID)
	suite.Require().NoError(err)
	suite.Equal([]string{other.ID().String()}, ids(views))
}

func (suite *QueriesIntegrationTestSuite) addNotification(recipient kernel.UUID, title string, at time.Time, read bool) {
	ctx := context.Background()
	n, err := notification.NewNotification(kernel.NewUUID(), notification.Intent{
		RecipientID: recipient,
		Type:        notification.OrderAccepted,
		Title:       title,
		Message:     title,
		OrderID:     kernel.NewUUID(),
		Metadata:    map[string]string{"title": title},
	}, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.notifications.Add(ctx, n))
	if read {
		suite.Require().NoError(suite.notifications.MarkRead(ctx, recipient, n.ID()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestListNotifications_PagesNewestFirst() {
	ctx := context.Background()
	recipient := suite.customer.ID()
	base := time.Now().UTC().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third", "fourth", "fifth"} {
		suite.addNotification(recipient, title, base.Add(time.Duration(i)*time.Minute), i%2 == 0)
	}
	suite.addNotification(suite.otherCustomer.ID(), "foreign", base, false)

	handler := queries.NewListNotificationsQueryHandler(suite.pg.DB)

	query, err := queries.NewListNotificationsQuery(recipient, nil, 1, 2)
	suite.Require().NoError(err)
	page, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(5), page.Total)
	suite.Equal(3, page.TotalPages)
	suite.Require().Len(page.Items, 2)
	suite.Equal("fifth", page.Items[0].Title)
	suite.Equal("fourth", page.Items[1].Title)
	suite.Equal(map[string]string{"title": "fifth"}, page.Items[0].Metadata)

	query, err = queries.NewListNotificationsQuery(recipient, nil, 3, 2)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal("first", page.Items[0].Title)

	unread := false
	query, err = queries.NewListNotificationsQuery(recipient, &unread, 0, 0)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, page.Page)
	suite.Equal(queries.DefaultNotificationsLimit, page.Limit)
	suite.Equal(int64(2), page.Total)
	for _, item := range page.Items {
		suite.False(item.IsRead)
	}
}

func (suite *QueriesIntegrationTestSuite) TestUnreadCount() {
	ctx := context.Background()
	recipient := suite.customer.ID()
	now := time.Now().UTC()
	suite.addNotification(recipient, "a", now, false)
	suite.addNotification(recipient, "b", now, true)
	suite.addNotification(recipient, "c", now, false)

	query, err := queries.NewUnreadCountQuery(recipient)
	suite.Require().NoError(err)
	handler := queries.NewUnreadCountQueryHandler(suite.pg.DB)

	count, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	_, err = suite.notifications.MarkAllRead(ctx, recipient)
	suite.Require().NoError(err)
	count, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Zero(count)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
