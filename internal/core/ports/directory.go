package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
)

// User is the directory's view of an account. Credentials live elsewhere.
type User struct {
	ID       kernel.UUID
	Name     string
	Role     actor.Role
	IsActive bool
}

// UserDirectory resolves users by id. Missing users are reported with an
// error matching errs.ErrObjectNotFound.
type UserDirectory interface {
	FindByID(ctx context.Context, id kernel.UUID) (User, error)
}
