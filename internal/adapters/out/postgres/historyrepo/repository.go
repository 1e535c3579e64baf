package historyrepo

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements ports.StatusHistoryRepository. The
// table rejects updates and deletes at the database level as well.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	dto := fromDomain(change)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pkgerrors.Wrapf(err, "append history of order %s", change.OrderID())
	}
	return nil
}

func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list history of order %s", orderID)
	}

	changes := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := ToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		changes = append(changes, c)
	}
	return changes, nil
}
