package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
		"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
	)
	ErrShipmentIDIsRequired     = errors.New("shipment id is required")
	ErrShipmentStatusIsRequired = errors.New("shipment status is required")
)

// UpdateShipmentStatusCommand represents a carrier's report of a shipment
// status change. The status is free text; terminal labels complete the
// shipment and cascade up to the fulfillment and order.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID string
	status     string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a command to record a carrier status.
func NewUpdateShipmentStatusCommand(shipmentID, status string) (UpdateShipmentStatusCommand, error) {
	statusCommand := UpdateShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setShipmentID(shipmentID),
		statusCommand.setStatus(status),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment being updated. Shipments
// share their fulfillment's identifier.
func (c UpdateShipmentStatusCommand) ShipmentID() string {
	return c.shipmentID
}

// Status returns the carrier-reported status label.
func (c UpdateShipmentStatusCommand) Status() string {
	return c.status
}

// OrderKey returns the owning order's identifier embedded in the shipment id,
// used to serialize carrier updates with other actions on the same order.
func (c UpdateShipmentStatusCommand) OrderKey() string {
	key, _, _ := strings.Cut(c.shipmentID, ":")
	return key
}

func (c *UpdateShipmentStatusCommand) setShipmentID(shipmentID string) error {
	if shipmentID == "" {
		return ErrShipmentIDIsRequired
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStatusCommand) setStatus(status string) error {
	if status == "" {
		return ErrShipmentStatusIsRequired
	}

	c.status = status
	return nil
}
