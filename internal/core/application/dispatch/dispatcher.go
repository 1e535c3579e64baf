// Package dispatch turns notification intents into stored inbox entries and
// pushes them to connected recipients.
package dispatch

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"

	"go.uber.org/zap"
)

// Dispatcher runs after the order change has committed. A failure for one
// recipient is logged and does not affect the others or the caller.
type Dispatcher struct {
	repo    ports.NotificationRepository
	channel ports.LiveChannel
	logger  *zap.Logger
	now     func() time.Time
}

func NewDispatcher(repo ports.NotificationRepository, channel ports.LiveChannel, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		channel: channel,
		logger:  logger.Named("dispatcher"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch stores every intent and publishes each stored notification. It
// returns the notifications that were stored.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []notification.Intent) []*notification.Notification {
	stored := make([]*notification.Notification, 0, len(intents))

	for _, intent := range intents {
		n, err := notification.NewNotification(kernel.NewUUID(), intent, d.now())
		if err != nil {
			d.logger.Error("invalid notification intent",
				zap.String("recipient_id", intent.RecipientID.String()),
				zap.String("type", intent.Type.String()),
				zap.Error(err))
			continue
		}

		if err = d.repo.Add(ctx, n); err != nil {
			d.logger.Error("failed to store notification",
				zap.String("recipient_id", n.RecipientID().String()),
				zap.String("order_id", n.OrderID().String()),
				zap.Error(err))
			continue
		}
		stored = append(stored, n)

		d.channel.Publish(ctx, n.RecipientID(), n)
	}

	if len(stored) > 0 {
		d.logger.Debug("notifications dispatched", zap.Int("count", len(stored)))
	}
	return stored
}
