package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListNotificationsResponse struct {
	Items      []NotificationView
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListNotificationsQueryHandler returns the requested page, newest first,
// together with the total count matching the filter.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsResponse{}, err
	}

	filter := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Table("notifications").
			Where("recipient_id = ?", query.RecipientID().Bytes())
		if isRead := query.IsRead(); isRead != nil {
			tx = tx.Where("is_read = ?", *isRead)
		}
		return tx
	}

	var total int64
	if err := filter().Count(&total).Error; err != nil {
		return ListNotificationsResponse{}, err
	}

	var rows []notificationRow
	if err := filter().
		Order("created_at DESC, id DESC").
		Offset(query.offset()).
		Limit(query.Limit()).
		Find(&rows).Error; err != nil {
		return ListNotificationsResponse{}, err
	}

	items := make([]NotificationView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return ListNotificationsResponse{}, err
		}
		items = append(items, view)
	}

	return ListNotificationsResponse{
		Items:      items,
		Page:       query.Page(),
		Limit:      query.Limit(),
		Total:      total,
		TotalPages: int((total + int64(query.Limit()) - 1) / int64(query.Limit())),
	}, nil
}
