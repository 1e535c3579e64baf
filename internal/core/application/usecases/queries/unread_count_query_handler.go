package queries

import (
	"context"

	"gorm.io/gorm"
)

type UnreadCountQueryHandler struct {
	db *gorm.DB
}

func NewUnreadCountQueryHandler(db *gorm.DB) UnreadCountQueryHandler {
	return UnreadCountQueryHandler{db: db}
}

func (h UnreadCountQueryHandler) Handle(ctx context.Context, query UnreadCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Table("notifications").
		Where("recipient_id = ? AND is_read = ?", query.RecipientID().Bytes(), false).
		Count(&count).Error
	return count, err
}
