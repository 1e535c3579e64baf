package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

var ErrRestaurantUnavailable = errors.New("restaurant is unavailable")

// CreateOrderCommandHandler validates the requested items against the
// restaurant's menu, stores the order with its creation history entry and
// notifies the restaurant owner and the customer.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.RestaurantCatalog
	directory  ports.UserDirectory
	dispatcher NotificationDispatcher
	planner    services.NotificationPlanner
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.RestaurantCatalog,
	directory ports.UserDirectory,
	dispatcher NotificationDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		directory:  directory,
		dispatcher: dispatcher,
		planner:    services.NewNotificationPlanner(),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	restaurant, err := h.catalog.FindByID(ctx, command.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s not found", ErrRestaurantUnavailable, command.RestaurantID())
	}
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, fmt.Errorf("%w: %s is not active", ErrRestaurantUnavailable, restaurant.ID)
	}

	items, err := h.lineItems(ctx, command)
	if err != nil {
		return nil, err
	}

	customer := command.Actor()
	newOrder, created, err := order.NewOrder(kernel.NewUUID(), customer.ID(), restaurant.ID, items,
		command.DeliveryAddress(), customer.Role(), time.Now().UTC())
	if errors.Is(err, errs.ErrValueIsOutOfRange) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLineItems, err)
	}
	if err != nil {
		return nil, err
	}

	if err = h.persist(ctx, newOrder, created); err != nil {
		return nil, err
	}

	// The order is committed; notifications must not die with the request.
	notifyCtx := context.WithoutCancel(ctx)
	customerID := customer.ID()
	h.dispatcher.Dispatch(notifyCtx, h.planner.OrderCreated(services.OrderContext{
		Order:          newOrder,
		OwnerID:        restaurant.OwnerID,
		RestaurantName: restaurant.Name,
		CustomerName:   displayName(notifyCtx, h.directory, &customerID),
	}))

	return newOrder, nil
}

// lineItems snapshots name and price of every requested menu item. Items that
// are unknown, unavailable or belong to another restaurant fail the request.
func (h CreateOrderCommandHandler) lineItems(ctx context.Context, command CreateOrderCommand) ([]order.LineItem, error) {
	menu, err := h.catalog.FindMenuItems(ctx, command.RestaurantID(), command.MenuItemIDs())
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]ports.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	items := make([]order.LineItem, 0, len(command.Items()))
	for _, requested := range command.Items() {
		menuItem, ok := byID[requested.MenuItemID]
		if !ok || !menuItem.RestaurantID.IsEqual(command.RestaurantID()) {
			return nil, fmt.Errorf("%w: menu item %s is not on the menu", ErrInvalidLineItems, requested.MenuItemID)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: menu item %s is unavailable", ErrInvalidLineItems, requested.MenuItemID)
		}

		item, err := order.NewLineItem(menuItem.ID, menuItem.Name, menuItem.Price, requested.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLineItems, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (h CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order, created order.StatusChange) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err := uow.StatusHistoryRepository().Append(ctx, created); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
