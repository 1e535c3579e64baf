package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// The inbox commands are single statements, so they use the repository
// directly instead of a unit of work.

type MarkNotificationReadCommandHandler struct {
	repo ports.NotificationRepository
}

func NewMarkNotificationReadCommandHandler(repo ports.NotificationRepository) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{repo: repo}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, command MarkNotificationReadCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.repo.MarkRead(ctx, command.RecipientID(), command.NotificationID())
}

type MarkAllNotificationsReadCommandHandler struct {
	repo ports.NotificationRepository
}

func NewMarkAllNotificationsReadCommandHandler(repo ports.NotificationRepository) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{repo: repo}
}

// Handle returns how many notifications changed.
func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, command MarkAllNotificationsReadCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}
	return h.repo.MarkAllRead(ctx, command.RecipientID())
}
