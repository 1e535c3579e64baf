// Package pgtest starts a throwaway PostgreSQL for integration tests and
// seeds the read-only tables.
package pgtest

import (
	"context"
	"time"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/directoryrepo"
	"fooddelivery/internal/adapters/out/postgres/migrations"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = migrations.Up(dsn); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}

// Reset empties every table.
func (d *Database) Reset() error {
	return d.DB.Exec(`TRUNCATE TABLE notifications, order_status_history, order_line_items,
		orders, menu_items, restaurants, users CASCADE`).Error
}

func (d *Database) SeedUser(name string, role actor.Role, active bool) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := directoryrepo.UserDTO{
		ID:        id.Bytes(),
		Name:      name,
		Email:     id.Short() + "@example.com",
		Role:      role.String(),
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	return id, d.DB.Create(&dto).Error
}

func (d *Database) SeedRestaurant(ownerID kernel.UUID, name string, active bool) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := catalogrepo.RestaurantDTO{
		ID:        id.Bytes(),
		OwnerID:   ownerID.Bytes(),
		Name:      name,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	return id, d.DB.Create(&dto).Error
}

func (d *Database) SeedMenuItem(restaurantID kernel.UUID, name string, priceCents int64, available bool) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := catalogrepo.MenuItemDTO{
		ID:           id.Bytes(),
		RestaurantID: restaurantID.Bytes(),
		Name:         name,
		PriceCents:   priceCents,
		IsAvailable:  available,
	}
	return id, d.DB.Create(&dto).Error
}
