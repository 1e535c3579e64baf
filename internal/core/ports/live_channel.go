package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

// LiveChannel pushes a stored notification to the recipient's open
// connections. It is fire-and-forget: offline recipients are skipped and
// failures are the channel's own concern.
type LiveChannel interface {
	Publish(ctx context.Context, recipientID kernel.UUID, n *notification.Notification)
}
