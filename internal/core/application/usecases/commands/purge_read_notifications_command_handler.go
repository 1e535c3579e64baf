package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"
)

type PurgeReadNotificationsCommandHandler struct {
	repo ports.NotificationRepository
	now  func() time.Time
}

func NewPurgeReadNotificationsCommandHandler(repo ports.NotificationRepository) PurgeReadNotificationsCommandHandler {
	return PurgeReadNotificationsCommandHandler{repo: repo, now: time.Now}
}

// Handle returns how many notifications were removed.
func (h PurgeReadNotificationsCommandHandler) Handle(ctx context.Context, command PurgeReadNotificationsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}
	return h.repo.DeleteReadBefore(ctx, h.now().Add(-command.Retention()))
}
