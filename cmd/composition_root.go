package cmd

import (
	"context"
	"time"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/directoryrepo"
	"fooddelivery/internal/adapters/out/postgres/notificationrepo"
	"fooddelivery/internal/adapters/out/realtime"
	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived dependency of the process.
type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger *zap.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    ports.RestaurantCatalog
	directory  ports.UserDirectory
	inbox      ports.NotificationRepository

	hub         *realtime.Hub
	relay       *realtime.RedisRelay
	redisClient *redis.Client
	dispatcher  *dispatch.Dispatcher
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormRestaurantCatalog(gormDB),
		directory:  directoryrepo.NewGormUserDirectory(gormDB),
		inbox:      notificationrepo.NewGormNotificationRepository(gormDB),
		hub:        realtime.NewHub(logger),
	}

	var channel ports.LiveChannel = c.hub
	if cfg.LiveChannelBackend == LiveChannelRedis {
		c.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		c.relay = realtime.NewRedisRelay(c.redisClient, c.hub, cfg.RedisChannelPrefix, logger)
		channel = c.relay
	}
	c.dispatcher = dispatch.NewDispatcher(c.inbox, channel, logger)

	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog, c.directory, c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.catalog, c.directory, c.dispatcher)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.orderUoWFactory(), c.catalog, c.directory, c.dispatcher)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.inbox)
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.inbox)
}

func (c *CompositionRoot) CreatePurgeReadNotificationsCommandHandler() commands.PurgeReadNotificationsCommandHandler {
	return commands.NewPurgeReadNotificationsCommandHandler(c.inbox)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.catalog)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.catalog)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateUnreadCountQueryHandler() queries.UnreadCountQueryHandler {
	return queries.NewUnreadCountQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the echo instance with every route mounted.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get sql.DB")
	}
	checks := map[string]httpin.Pinger{"database": sqlDB}
	if c.redisClient != nil {
		checks["redis"] = redisPinger{client: c.redisClient}
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:              c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:        c.CreateChangeOrderStatusCommandHandler(),
		AssignRider:              c.CreateAssignRiderCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		MarkAllNotificationsRead: c.CreateMarkAllNotificationsReadCommandHandler(),
		GetOrder:                 c.CreateGetOrderQueryHandler(),
		ListOrders:               c.CreateListOrdersQueryHandler(),
		ListNotifications:        c.CreateListNotificationsQueryHandler(),
		UnreadCount:              c.CreateUnreadCountQueryHandler(),
	}, c.hub, httpin.NewHealthReporter(c.cfg.AppEnv, c.cfg.AppVersion, checks))

	validator, err := httpin.NewRequestValidator()
	if err != nil {
		return nil, err
	}

	e := httpin.NewEcho(c.logger)
	server.Register(e,
		httpin.NewAuthenticator(c.cfg.JWTSecret, c.directory),
		httpin.NewRateLimiter(c.cfg.RateLimitRPS, c.cfg.RateLimitBurst),
		validator)
	return e, nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	purge := jobs.NewNotificationPurgeJob(
		c.CreatePurgeReadNotificationsCommandHandler(),
		c.cfg.PurgeSchedule,
		c.cfg.NotificationRetention,
		c.logger,
	)
	if c.relay == nil {
		return jobs.NewJobManager(purge, nil)
	}
	return jobs.NewJobManager(purge, c.relay)
}

// Close releases the live connections and the Redis client. The database is
// closed by the caller that opened it.
func (c *CompositionRoot) Close() {
	c.hub.Close()
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.logger.Warn("close redis client", zap.Error(err))
		}
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}
