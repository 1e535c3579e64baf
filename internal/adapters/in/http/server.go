package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// The server depends on the use cases through these interfaces so that each
// route can be exercised without a database.

type CreateOrderHandler interface {
	Handle(ctx context.Context, command commands.CreateOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, command commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type AssignRiderHandler interface {
	Handle(ctx context.Context, command commands.AssignRiderCommand) (*order.Order, error)
}

type MarkNotificationReadHandler interface {
	Handle(ctx context.Context, command commands.MarkNotificationReadCommand) error
}

type MarkAllNotificationsReadHandler interface {
	Handle(ctx context.Context, command commands.MarkAllNotificationsReadCommand) (int64, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

type ListNotificationsHandler interface {
	Handle(ctx context.Context, query queries.ListNotificationsQuery) (queries.ListNotificationsResponse, error)
}

type UnreadCountHandler interface {
	Handle(ctx context.Context, query queries.UnreadCountQuery) (int64, error)
}

// LiveConnections upgrades an authenticated request to the live channel.
type LiveConnections interface {
	Serve(w http.ResponseWriter, r *http.Request, recipientID kernel.UUID) error
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	CreateOrder              CreateOrderHandler
	ChangeOrderStatus        ChangeOrderStatusHandler
	AssignRider              AssignRiderHandler
	MarkNotificationRead     MarkNotificationReadHandler
	MarkAllNotificationsRead MarkAllNotificationsReadHandler

	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
	ListNotifications ListNotificationsHandler
	UnreadCount       UnreadCountHandler
}

// Server maps the REST API onto the order workflow use cases.
type Server struct {
	handlers Handlers
	live     LiveConnections
	health   *HealthReporter
}

func NewServer(handlers Handlers, live LiveConnections, health *HealthReporter) *Server {
	return &Server{handlers: handlers, live: live, health: health}
}

// Register mounts every route on e. Everything except /health and the API
// docs requires a bearer token; the API routes are rate limited per user and
// validated against the OpenAPI document.
func (s *Server) Register(e *echo.Echo, auth *Authenticator, limiter *RateLimiter, validator *RequestValidator) {
	e.GET("/health", s.Health)
	e.GET("/ws", s.LiveChannel, auth.Middleware())
	RegisterDocs(e)

	api := e.Group("/api/v1", auth.Middleware(), limiter.Middleware(), validator.Middleware())

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)
	api.PUT("/orders/:id/assign-rider", s.AssignRider)

	api.GET("/notifications", s.ListNotifications)
	api.GET("/notifications/unread-count", s.UnreadCount)
	api.PUT("/notifications/read-all", s.MarkAllNotificationsRead)
	api.PUT("/notifications/:id/read", s.MarkNotificationRead)
}

func (s *Server) LiveChannel(c echo.Context) error {
	return s.live.Serve(c.Response(), c.Request(), actorFrom(c).ID())
}
