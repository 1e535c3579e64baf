package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// displayName resolves a user's name for notification texts. Lookup failures
// leave the name empty; the planner then falls back to a generic label.
func displayName(ctx context.Context, directory ports.UserDirectory, id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	user, err := directory.FindByID(ctx, *id)
	if err != nil {
		return ""
	}
	return user.Name
}
