package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ChangeOrderStatusCommandHandler authorizes and applies a status change.
//
// The order row is updated with a compare-and-swap on its version and the
// history entry is appended in the same transaction. When another request
// wins the race the order is reloaded and the whole decision is taken again,
// up to MaxAttempts times, after which ErrConflict is returned.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.RestaurantCatalog
	directory  ports.UserDirectory
	dispatcher NotificationDispatcher
	policy     services.AuthorizationPolicy
	planner    services.NotificationPlanner
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.RestaurantCatalog,
	directory ports.UserDirectory,
	dispatcher NotificationDispatcher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		directory:  directory,
		dispatcher: dispatcher,
		policy:     services.NewAuthorizationPolicy(),
		planner:    services.NewNotificationPlanner(),
	}
}

type statusChangeResult struct {
	order      *order.Order
	change     order.StatusChange
	restaurant ports.Restaurant
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result statusChangeResult
	err := retryOnVersionConflict(func() error {
		var attemptErr error
		result, attemptErr = h.attempt(ctx, command)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	notifyCtx := context.WithoutCancel(ctx)
	orderCtx := services.OrderContext{
		Order:          result.order,
		OwnerID:        result.restaurant.OwnerID,
		RestaurantName: result.restaurant.Name,
	}
	if result.change.To() == order.OutForDelivery {
		orderCtx.RiderName = displayName(notifyCtx, h.directory, result.order.RiderID())
	}
	h.dispatcher.Dispatch(notifyCtx, h.planner.StatusChanged(orderCtx, result.change, command.Actor()))

	return result.order, nil
}

func (h ChangeOrderStatusCommandHandler) attempt(ctx context.Context, command ChangeOrderStatusCommand) (statusChangeResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return statusChangeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	historyRepo := uow.StatusHistoryRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return statusChangeResult{}, err
	}

	restaurant, err := h.catalog.FindByID(ctx, o.RestaurantID())
	if err != nil {
		return statusChangeResult{}, err
	}

	if err = h.policy.AuthorizeStatusChange(command.Actor(), o, restaurant.OwnerID, command.Requested()); err != nil {
		return statusChangeResult{}, err
	}

	change, err := o.ChangeStatus(command.Requested(), command.Actor().Role(), command.Reason(), time.Now().UTC())
	if err != nil {
		return statusChangeResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return statusChangeResult{}, err
	}

	if err = historyRepo.Append(ctx, change); err != nil {
		return statusChangeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return statusChangeResult{}, err
	}

	return statusChangeResult{order: o, change: change, restaurant: restaurant}, nil
}
