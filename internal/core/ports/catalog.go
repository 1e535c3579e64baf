package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

type Restaurant struct {
	ID       kernel.UUID
	OwnerID  kernel.UUID
	Name     string
	IsActive bool
}

type MenuItem struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	IsAvailable  bool
}

// RestaurantCatalog is the read side of restaurant and menu management.
type RestaurantCatalog interface {
	// FindByID returns the restaurant or an error matching errs.ErrObjectNotFound.
	FindByID(ctx context.Context, id kernel.UUID) (Restaurant, error)

	// FindMenuItems returns the items among ids that belong to restaurantID.
	// Unknown or foreign ids are simply absent from the result.
	FindMenuItems(ctx context.Context, restaurantID kernel.UUID, ids []kernel.UUID) ([]MenuItem, error)

	// ListOwnedBy returns the ids of the restaurants owned by ownerID.
	ListOwnedBy(ctx context.Context, ownerID kernel.UUID) ([]kernel.UUID, error)
}
