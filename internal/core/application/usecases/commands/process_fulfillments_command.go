package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ProcessFulfillmentsCommand triggers a processing pass over all pending
// fulfillments: charging payments and booking shipments.
//
// Example:
//
//	cmd := NewProcessFulfillmentsCommand()
//	handler := NewProcessFulfillmentsCommandHandler(uowFactory, calculator, notifier, locks)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Fulfillment processing failed: %v", err)
//	}
type ProcessFulfillmentsCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrProcessFulfillmentsCommandIsNotConstructed = errors.New(
		"ProcessFulfillmentsCommand must be created via NewProcessFulfillmentsCommand constructor",
	)
)

// NewProcessFulfillmentsCommand creates a command to trigger a processing pass.
// This is a parameterless command that covers all non-terminal orders.
func NewProcessFulfillmentsCommand() ProcessFulfillmentsCommand {
	command := ProcessFulfillmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessFulfillmentsCommandIsNotConstructed if validation fails.
func (c *ProcessFulfillmentsCommand) Validate() error {
	return c.guard.Validate(ErrProcessFulfillmentsCommandIsNotConstructed)
}
