package historyrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/historyrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type StatusHistoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	orders     *orderrepo.GormOrderRepository
	repository *historyrepo.GormStatusHistoryRepository
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.orders = orderrepo.NewGormOrderRepository(pg.DB)
	suite.repository = historyrepo.NewGormStatusHistoryRepository(pg.DB)
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) TestAppend_ListsOldestFirst() {
	ctx := context.Background()
	o, created := suite.newOrder()
	suite.Require().NoError(suite.repository.Append(ctx, created))

	// identical timestamps must not reorder entries
	at := time.Now().UTC()
	for _, next := range []order.Status{order.Accepted, order.Preparing, order.Cancelled} {
		change, err := o.ChangeStatus(next, actor.RestaurantOwner, "kitchen closed", at)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Append(ctx, change))
	}

	history, err := suite.repository.ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 4)

	suite.Nil(history[0].From())
	suite.Equal(order.Pending, history[0].To())
	suite.Equal(actor.Customer, history[0].Role())
	for i := 1; i < len(history); i++ {
		suite.Require().NotNil(history[i].From())
		suite.Equal(history[i-1].To(), *history[i].From())
		suite.NoError(order.ValidateTransition(*history[i].From(), history[i].To()))
	}
	suite.Equal(order.Cancelled, history[3].To())
	suite.Equal("kitchen closed", history[3].Reason())
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) TestEntriesCannotBeRewritten() {
	ctx := context.Background()
	o, created := suite.newOrder()
	suite.Require().NoError(suite.repository.Append(ctx, created))

	suite.Require().NoError(suite.pg.DB.Exec(
		"UPDATE order_status_history SET to_status = 'DELIVERED' WHERE order_id = ?", o.ID().Bytes()).Error)
	suite.Require().NoError(suite.pg.DB.Exec(
		"DELETE FROM order_status_history WHERE order_id = ?", o.ID().Bytes()).Error)

	history, err := suite.repository.ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(order.Pending, history[0].To())
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) TestListByOrder_Empty() {
	history, err := suite.repository.ListByOrder(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *StatusHistoryRepositoryIntegrationTestSuite) newOrder() (*order.Order, order.StatusChange) {
	price, err := kernel.NewMoney(1250)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Pizza", price, 1)
	suite.Require().NoError(err)

	o, created, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, "", actor.Customer, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o, created
}

func TestStatusHistoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StatusHistoryRepositoryIntegrationTestSuite))
}
