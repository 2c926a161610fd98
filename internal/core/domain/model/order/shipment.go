package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrShipmentTerminal is returned when a status write is attempted against a
// shipment that has already reached a terminal label. The write is a no-op.
var ErrShipmentTerminal = errors.New("shipment status is terminal")

// Carrier status labels observed from the shipping collaborator. The label is
// free text; these are the values the stock carrier reports.
const (
	ShipmentLabelPending    = "pending"
	ShipmentLabelBooked     = "booked"
	ShipmentLabelDispatched = "dispatched"
	ShipmentLabelDelivered  = "delivered"
	ShipmentLabelFailed     = "failed"
)

// Shipment tracks carrier progress for one fulfillment. The shipment shares
// its identifier with the owning fulfillment, and its items are a subset (by
// quantity) of the fulfillment's items.
//
// The status is a free-text label supplied by the carrier, structurally
// validated only for terminality: once a terminal-looking label ("delivered",
// "completed") has been observed, further writes fail with ErrShipmentTerminal.
type Shipment struct {
	id        string
	items     []OrderItem
	status    string
	updatedAt time.Time
}

// NewShipment creates a shipment in the pending state.
func NewShipment(id string, items []OrderItem, at time.Time) (*Shipment, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("shipment id")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("shipment items")
	}

	return &Shipment{
		id:        id,
		items:     cloneItems(items),
		status:    ShipmentLabelPending,
		updatedAt: at,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(id string, items []OrderItem, status string, updatedAt time.Time) (*Shipment, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("shipment id")
	}
	if status == "" {
		return nil, errs.NewValueIsRequiredError("shipment status")
	}

	return &Shipment{
		id:        id,
		items:     cloneItems(items),
		status:    status,
		updatedAt: updatedAt,
	}, nil
}

// IsTerminalShipmentLabel reports whether a carrier label means the shipment
// reached its final, successful state. Matching is case-insensitive.
func IsTerminalShipmentLabel(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case ShipmentLabelDelivered, "completed":
		return true
	}
	return false
}

// UpdateStatus records a carrier label. Writes against a shipment whose label
// is already terminal fail with ErrShipmentTerminal and leave the shipment
// unchanged.
func (s *Shipment) UpdateStatus(label string, at time.Time) error {
	if label == "" {
		return errs.NewValueIsRequiredError("shipment status")
	}
	if IsTerminalShipmentLabel(s.status) {
		return fmt.Errorf("%w: shipment %s already %s", ErrShipmentTerminal, s.id, s.status)
	}

	s.status = label
	s.updatedAt = at
	return nil
}

// ID returns the shipment identifier (shared with the owning fulfillment).
func (s *Shipment) ID() string { return s.id }

// Items returns the items carried by this shipment.
func (s *Shipment) Items() []OrderItem { return cloneItems(s.items) }

// Status returns the latest carrier label.
func (s *Shipment) Status() string { return s.status }

// UpdatedAt returns the time of the latest status write.
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// Delivered reports whether the shipment reached a terminal label.
func (s *Shipment) Delivered() bool { return IsTerminalShipmentLabel(s.status) }

// Failed reports whether the carrier reported the shipment as failed.
func (s *Shipment) Failed() bool {
	return strings.EqualFold(strings.TrimSpace(s.status), ShipmentLabelFailed)
}
