// Package catalogrepo reads restaurants and menu items. Menus are managed
// elsewhere; orders only snapshot them.
package catalogrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	PriceCents   int64
	IsAvailable  bool
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormRestaurantCatalog implements ports.RestaurantCatalog.
type GormRestaurantCatalog struct {
	db *gorm.DB
}

func NewGormRestaurantCatalog(db *gorm.DB) *GormRestaurantCatalog {
	return &GormRestaurantCatalog{db: db}
}

func (c *GormRestaurantCatalog) FindByID(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return ports.Restaurant{}, err
	}

	var dto RestaurantDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Restaurant{}, errs.NewObjectNotFoundError("restaurantID", id)
	}
	if err != nil {
		return ports.Restaurant{}, pkgerrors.Wrapf(err, "load restaurant %s", id)
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.Restaurant{}, err
	}
	return ports.Restaurant{ID: id, OwnerID: ownerID, Name: dto.Name, IsActive: dto.IsActive}, nil
}

func (c *GormRestaurantCatalog) FindMenuItems(
	ctx context.Context,
	restaurantID kernel.UUID,
	ids []kernel.UUID,
) ([]ports.MenuItem, error) {
	if len(ids) == 0 {
		return []ports.MenuItem{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	err := c.db.WithContext(ctx).
		Where("restaurant_id = ? AND id IN ?", restaurantID.Bytes(), raw).
		Find(&dtos).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load menu items of restaurant %s", restaurantID)
	}

	items := make([]ports.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(dto.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, ports.MenuItem{
			ID:           id,
			RestaurantID: restaurantID,
			Name:         dto.Name,
			Price:        price,
			IsAvailable:  dto.IsAvailable,
		})
	}
	return items, nil
}

func (c *GormRestaurantCatalog) ListOwnedBy(ctx context.Context, ownerID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := c.db.WithContext(ctx).
		Model(&RestaurantDTO{}).
		Where("owner_id = ?", ownerID.Bytes()).
		Order("created_at ASC").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list restaurants of %s", ownerID)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, idErr := kernel.UUIDFromBytes(r[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}
