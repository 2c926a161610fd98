package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplyOrderActionCommandIsNotConstructed = errors.New(
		"ApplyOrderActionCommand must be created via NewApplyOrderActionCommand constructor",
	)
	ErrActionIsInvalid = errors.New("action must be amend or cancel")
)

// Customer actions that can be applied to an order.
const (
	ActionAmend  = "amend"
	ActionCancel = "cancel"
)

// ApplyOrderActionCommand represents a customer's request to act on an
// existing order: amend it after an availability problem, or cancel it.
type ApplyOrderActionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  string

	guard guard.ConstructorGuard
}

// NewApplyOrderActionCommand creates a command to apply a customer action.
// The action must be ActionAmend or ActionCancel.
func NewApplyOrderActionCommand(orderID kernel.UUID, action string) (ApplyOrderActionCommand, error) {
	actionCommand := ApplyOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actionCommand.setOrderID(orderID),
		actionCommand.setAction(action),
	); err != nil {
		return ApplyOrderActionCommand{}, err
	}

	return actionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderActionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c ApplyOrderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested action, ActionAmend or ActionCancel.
func (c ApplyOrderActionCommand) Action() string {
	return c.action
}

func (c *ApplyOrderActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyOrderActionCommand) setAction(action string) error {
	if action != ActionAmend && action != ActionCancel {
		return ErrActionIsInvalid
	}

	c.action = action
	return nil
}
