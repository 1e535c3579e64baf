package notificationrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pkgerrors.Wrapf(err, "insert notification for %s", n.RecipientID())
	}
	return nil
}

// MarkRead filters by recipient so that foreign notifications look missing.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, recipientID, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND recipient_id = ?", id.Bytes(), recipientID.Bytes()).
		Update("is_read", true)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "mark notification %s read", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationID", id)
	}
	return nil
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND is_read = ?", recipientID.Bytes(), false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, pkgerrors.Wrapf(result.Error, "mark notifications of %s read", recipientID)
	}
	return result.RowsAffected, nil
}

func (r *GormNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, pkgerrors.Wrapf(result.Error, "delete notifications read before %s", cutoff.Format(time.RFC3339))
	}
	return result.RowsAffected, nil
}
