package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrPurgeReadNotificationsCommandIsNotConstructed = errors.New(
	"PurgeReadNotificationsCommand must be created via NewPurgeReadNotificationsCommand constructor",
)

// PurgeReadNotificationsCommand removes read notifications older than the
// retention period.
type PurgeReadNotificationsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeReadNotificationsCommand(retention time.Duration) (PurgeReadNotificationsCommand, error) {
	if retention <= 0 {
		return PurgeReadNotificationsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}
	return PurgeReadNotificationsCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeReadNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeReadNotificationsCommandIsNotConstructed)
}

func (c PurgeReadNotificationsCommand) Retention() time.Duration {
	return c.retention
}
