package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order row and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pkgerrors.Wrapf(err, "insert order %s", aggregate.ID())
	}
	return nil
}

// Update is a compare-and-swap on the version column. Line items and the
// total are immutable and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":     dto.Status,
			"rider_id":   dto.RiderID,
			"updated_at": dto.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "update order %s", aggregate.ID())
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pkgerrors.Wrapf(err, "check order %s", aggregate.ID())
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}
	return errs.NewVersionIsInvalidError("order", aggregate.Version())
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems", orderedLineItems).
		First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load order %s", id)
	}

	return ToDomain(dto)
}

func orderedLineItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// PreloadLineItems is the scope the read side uses to load line items in
// their original order.
func PreloadLineItems(db *gorm.DB) *gorm.DB {
	return db.Preload("LineItems", orderedLineItems)
}
