package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// MaxAttempts bounds how often a command reloads an order after losing an
// optimistic-lock race.
const MaxAttempts = 3

var ErrConflict = errors.New("order was modified concurrently, retry later")

// retryOnVersionConflict runs attempt until it succeeds, fails with anything
// other than a version conflict, or MaxAttempts is reached. Each attempt must
// reload and re-authorize from scratch.
func retryOnVersionConflict(attempt func() error) error {
	var err error
	for range MaxAttempts {
		err = attempt()
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrConflict, err)
}
