package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// StatusHistoryRepository is append-only: entries are never updated or
// deleted.
type StatusHistoryRepository interface {
	Append(ctx context.Context, change order.StatusChange) error

	// ListByOrder returns the entries of an order oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
