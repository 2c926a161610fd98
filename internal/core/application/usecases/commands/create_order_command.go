package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("customer id is required")
	ErrLinesAreRequired   = errors.New("at least one order line is required")
	ErrLineIsInvalid      = errors.New("order line must have a sku and a positive quantity")
)

// OrderLine is one requested catalog item in a customer submission.
type OrderLine struct {
	SKU      string
	Quantity int
}

// CreateOrderCommand represents a customer's request to place a new order.
// Carries the order id chosen by the caller, the ordering customer, and the
// requested lines; SKUs are resolved against the catalog by the handler.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "customer-42", []OrderLine{
//	    {SKU: "Nike Air Force Ones", Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID string
	lines      []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order id is valid, the customer id is present, and every
// line names a SKU with a positive quantity.
func NewCreateOrderCommand(orderID kernel.UUID, customerID string, lines []OrderLine) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, line := range lines {
		if line.SKU == "" || line.Quantity <= 0 {
			return ErrLineIsInvalid
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
