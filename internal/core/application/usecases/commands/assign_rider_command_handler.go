package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AssignRiderCommandHandler loads the order and the candidate rider, applies
// the assignment rules and stores the new rider reference. It retries on
// version conflicts like ChangeOrderStatusCommandHandler.
type AssignRiderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.RestaurantCatalog
	directory  ports.UserDirectory
	dispatcher NotificationDispatcher
	assignment services.RiderAssignment
	planner    services.NotificationPlanner
}

func NewAssignRiderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.RestaurantCatalog,
	directory ports.UserDirectory,
	dispatcher NotificationDispatcher,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		directory:  directory,
		dispatcher: dispatcher,
		assignment: services.NewRiderAssignment(),
		planner:    services.NewNotificationPlanner(),
	}
}

type assignmentResult struct {
	order      *order.Order
	previous   *kernel.UUID
	restaurant ports.Restaurant
	riderName  string
}

func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result assignmentResult
	err := retryOnVersionConflict(func() error {
		var attemptErr error
		result, attemptErr = h.attempt(ctx, command)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	notifyCtx := context.WithoutCancel(ctx)
	customerID := result.order.CustomerID()
	h.dispatcher.Dispatch(notifyCtx, h.planner.RiderAssigned(services.OrderContext{
		Order:          result.order,
		OwnerID:        result.restaurant.OwnerID,
		RestaurantName: result.restaurant.Name,
		CustomerName:   displayName(notifyCtx, h.directory, &customerID),
		RiderName:      result.riderName,
	}, result.previous, command.Actor()))

	return result.order, nil
}

func (h AssignRiderCommandHandler) attempt(ctx context.Context, command AssignRiderCommand) (assignmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return assignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return assignmentResult{}, err
	}

	restaurant, err := h.catalog.FindByID(ctx, o.RestaurantID())
	if err != nil {
		return assignmentResult{}, err
	}

	candidate, riderName, err := h.candidate(ctx, command.RiderID())
	if err != nil {
		return assignmentResult{}, err
	}

	previous, err := h.assignment.Assign(command.Actor(), o, restaurant.OwnerID, command.RiderID(), candidate, time.Now().UTC())
	if err != nil {
		return assignmentResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return assignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return assignmentResult{}, err
	}

	return assignmentResult{order: o, previous: previous, restaurant: restaurant, riderName: riderName}, nil
}

// candidate returns nil when the rider id does not resolve to a user.
func (h AssignRiderCommandHandler) candidate(ctx context.Context, riderID kernel.UUID) (*services.RiderCandidate, string, error) {
	user, err := h.directory.FindByID(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &services.RiderCandidate{ID: user.ID, Role: user.Role, IsActive: user.IsActive}, user.Name, nil
}
