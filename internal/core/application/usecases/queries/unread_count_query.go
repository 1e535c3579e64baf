package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUnreadCountQueryIsNotConstructed = errors.New(
	"UnreadCountQuery must be created via NewUnreadCountQuery constructor",
)

type UnreadCountQuery struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUnreadCountQuery(recipientID kernel.UUID) (UnreadCountQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return UnreadCountQuery{}, err
	}
	return UnreadCountQuery{recipientID: recipientID, guard: guard.NewConstructorGuard()}, nil
}

func (q UnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrUnreadCountQueryIsNotConstructed)
}

func (q UnreadCountQuery) RecipientID() kernel.UUID {
	return q.recipientID
}
