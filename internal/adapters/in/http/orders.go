package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter. dst points to a
// pointer that stays nil when the parameter is absent.
func queryParam(c echo.Context, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parseID(name, raw)
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	restaurantID, err := parseID("restaurantId", req.RestaurantID)
	if err != nil {
		return err
	}
	items := make([]commands.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, parseErr := parseID("menuItemId", item.MenuItemID)
		if parseErr != nil {
			return parseErr
		}
		items = append(items, commands.RequestedItem{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), restaurantID, items, req.DeliveryAddress)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Order created",
		map[string]OrderResponse{"order": toOrderResponse(queries.OrderViewOf(created))})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(actorFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order fetched", map[string]OrderResponse{"order": toOrderResponse(view)})
}

// ListOrders handles GET /api/v1/orders?status=&restaurantId=.
func (s *Server) ListOrders(c echo.Context) error {
	var rawStatus, rawRestaurantID *string
	if err := queryParam(c, "status", &rawStatus); err != nil {
		return err
	}
	if err := queryParam(c, "restaurantId", &rawRestaurantID); err != nil {
		return err
	}

	var status *order.Status
	if rawStatus != nil && *rawStatus != "" {
		parsed, err := order.ParseStatus(*rawStatus)
		if err != nil {
			return err
		}
		status = &parsed
	}

	var restaurantID *kernel.UUID
	if rawRestaurantID != nil && *rawRestaurantID != "" {
		parsed, err := parseID("restaurantId", *rawRestaurantID)
		if err != nil {
			return err
		}
		restaurantID = &parsed
	}

	query, err := queries.NewListOrdersQuery(actorFrom(c), status, restaurantID)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	orders := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		orders = append(orders, toOrderResponse(v))
	}
	return success(c, http.StatusOK, "Orders fetched", map[string][]OrderResponse{"orders": orders})
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ChangeOrderStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actorFrom(c), id, status, req.Reason)
	if err != nil {
		return err
	}

	updated, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order status updated",
		map[string]OrderResponse{"order": toOrderResponse(queries.OrderViewOf(updated))})
}

// AssignRider handles PUT /api/v1/orders/:id/assign-rider. A rider may send
// an empty body to take the order themselves.
func (s *Server) AssignRider(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignRiderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	who := actorFrom(c)
	riderID := who.ID()
	if req.RiderID != "" {
		if riderID, err = parseID("riderId", req.RiderID); err != nil {
			return err
		}
	}

	cmd, err := commands.NewAssignRiderCommand(who, id, riderID)
	if err != nil {
		return err
	}

	updated, err := s.handlers.AssignRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Rider assigned successfully",
		map[string]OrderResponse{"order": toOrderResponse(queries.OrderViewOf(updated))})
}
