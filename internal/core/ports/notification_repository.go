package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// MarkRead marks one notification of recipientID as read. A notification
	// that exists but belongs to someone else is reported as not found.
	MarkRead(ctx context.Context, recipientID, id kernel.UUID) error

	// MarkAllRead marks every unread notification of recipientID as read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, recipientID kernel.UUID) (int64, error)

	// DeleteReadBefore removes read notifications created before cutoff and
	// returns how many were removed. Unread ones are kept regardless of age.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
