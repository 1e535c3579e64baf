// Package commands contains the operations that change state: creating an
// order, moving it through its lifecycle, assigning riders and managing the
// notification inbox. Each command is validated on construction and handled
// inside a unit of work.
package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// OrderUoW covers every order mutation: the order row and its history
	// entry are written in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { ... }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   _ = uow.OrderRepository().Update(ctx, o)
	//   _ = uow.StatusHistoryRepository().Append(ctx, change)
	//
	//   err := uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusHistoryRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NotificationDispatcher stores and pushes notification intents. It never
	// fails the caller; per-recipient problems are handled inside.
	NotificationDispatcher interface {
		Dispatch(ctx context.Context, intents []notification.Intent) []*notification.Notification
	}
)
