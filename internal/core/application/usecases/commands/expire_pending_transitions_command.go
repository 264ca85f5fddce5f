package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

// ExpirePendingTransitionsCommand sweeps holds whose driver dialog was
// abandoned. Stores with native expiry report nothing to sweep.
type ExpirePendingTransitionsCommand struct {
	guard guard.ConstructorGuard
}

var ErrExpirePendingTransitionsCommandIsNotConstructed = errors.New(
	"ExpirePendingTransitionsCommand must be created via NewExpirePendingTransitionsCommand constructor",
)

func NewExpirePendingTransitionsCommand() ExpirePendingTransitionsCommand {
	return ExpirePendingTransitionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *ExpirePendingTransitionsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingTransitionsCommandIsNotConstructed)
}
