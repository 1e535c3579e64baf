package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their line items.
type OrderRepository interface {
	// Add stores a new order and its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable part of the order (status, rider, updated-at)
	// if and only if the stored version still equals aggregate.Version(), and
	// increments it. A lost race returns an error matching
	// errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an error matching errs.ErrObjectNotFound.
	// Soft-deleted orders are not found.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
