package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultNotificationsLimit = 20
	MaxNotificationsLimit     = 100
	// MaxNotificationsPage keeps the row offset well inside int range.
	MaxNotificationsPage = 100_000
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery pages through the recipient's notifications. Page
// numbers start at 1; zero page and zero limit fall back to the defaults.
type ListNotificationsQuery struct {
	recipientID kernel.UUID
	isRead      *bool
	page        int
	limit       int

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(recipientID kernel.UUID, isRead *bool, page, limit int) (ListNotificationsQuery, error) {
	var pageErr, limitErr error
	if page < 0 || page > MaxNotificationsPage {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 1, MaxNotificationsPage)
	}
	if limit < 0 || limit > MaxNotificationsLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotificationsLimit)
	}
	if err := errors.Join(recipientID.Validate(), pageErr, limitErr); err != nil {
		return ListNotificationsQuery{}, err
	}

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultNotificationsLimit
	}

	q := ListNotificationsQuery{
		recipientID: recipientID,
		page:        page,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}
	if isRead != nil {
		v := *isRead
		q.isRead = &v
	}
	return q, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

func (q ListNotificationsQuery) IsRead() *bool {
	return q.isRead
}

func (q ListNotificationsQuery) Page() int {
	return q.page
}

func (q ListNotificationsQuery) Limit() int {
	return q.limit
}

func (q ListNotificationsQuery) offset() int {
	return (q.page - 1) * q.limit
}
