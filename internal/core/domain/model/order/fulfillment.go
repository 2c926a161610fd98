package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrFulfillmentIsNotConstructed is returned when a Fulfillment instance was
// not created through NewFulfillment or RestoreFulfillment.
var ErrFulfillmentIsNotConstructed = errors.New(
	"Fulfillment must be created via NewFulfillment or RestoreFulfillment",
)

// Fulfillment is the unit of an order routed to a single location for
// shipment and payment. A fulfillment is owned exclusively by one order and
// never exists without a parent.
//
// Invariants:
//   - Items are exclusively owned; the parent order's conservation law holds
//     across all of its fulfillments.
//   - The shipment, when present, carries a subset (by quantity) of the
//     fulfillment's items.
//   - Status transitions follow the FulfillmentStatus state machine.
type Fulfillment struct {
	id       string
	location string
	items    []OrderItem
	shipment *Shipment
	payment  *Payment
	status   FulfillmentStatus

	isConstructed bool
}

// NewFulfillment creates a fulfillment for a group of items. Available groups
// start pending at their location; unavailable groups start unavailable with
// an empty location.
func NewFulfillment(id, location string, items []OrderItem, available bool) (*Fulfillment, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("fulfillment id")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("fulfillment items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	f := &Fulfillment{
		id:            id,
		items:         cloneItems(items),
		isConstructed: true,
	}
	if available {
		if location == "" {
			return nil, errs.NewValueIsRequiredError("fulfillment location")
		}
		f.location = location
		f.status = FulfillmentStatusPending
	} else {
		f.status = FulfillmentStatusUnavailable
	}

	return f, nil
}

// RestoreFulfillment reconstructs a fulfillment from persistence, including
// its shipment and payment when present.
func RestoreFulfillment(
	id, location string,
	items []OrderItem,
	status FulfillmentStatus,
	shipment *Shipment,
	payment *Payment,
) (*Fulfillment, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("fulfillment id")
	}
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("fulfillment status", err)
	}
	if shipment != nil {
		if err := validateSubset(shipment.items, items); err != nil {
			return nil, err
		}
	}

	return &Fulfillment{
		id:            id,
		location:      location,
		items:         cloneItems(items),
		shipment:      shipment,
		payment:       payment,
		status:        status,
		isConstructed: true,
	}, nil
}

// validateSubset checks that the candidate items are covered, per SKU and
// quantity, by the owning set.
func validateSubset(candidate, owning []OrderItem) error {
	owned := totalQuantity(owning)
	for sku, qty := range totalQuantity(candidate) {
		if qty > owned[sku] {
			return errs.NewValueIsInvalidErrorWithCause(
				"shipment items",
				fmt.Errorf("%s x%d exceeds fulfillment quantity %d", sku, qty, owned[sku]),
			)
		}
	}
	return nil
}

// Validate ensures the Fulfillment was created through a factory function.
func (f *Fulfillment) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFulfillmentIsNotConstructed
	}
	return nil
}

// ID returns the fulfillment's unique identifier.
func (f *Fulfillment) ID() string { return f.id }

// Location returns the fulfillment location. Empty for unavailable fulfillments.
func (f *Fulfillment) Location() string { return f.location }

// Items returns the items owned by this fulfillment.
func (f *Fulfillment) Items() []OrderItem { return cloneItems(f.items) }

// Shipment returns the fulfillment's shipment, or nil before one is opened.
func (f *Fulfillment) Shipment() *Shipment { return f.shipment }

// Payment returns the fulfillment's payment, or nil before processing begins.
func (f *Fulfillment) Payment() *Payment { return f.payment }

// Status returns the current fulfillment status.
func (f *Fulfillment) Status() FulfillmentStatus { return f.status }

// BeginProcessing moves the fulfillment into processing and opens a pending
// payment. Legal from pending and unavailable (the latter after the
// availability situation has been remediated).
func (f *Fulfillment) BeginProcessing() error {
	newStatus, err := f.status.Transition(FulfillmentStatusProcessing)
	if err != nil {
		return err
	}

	f.status = newStatus
	f.payment = NewPendingPayment()
	return nil
}

// ResolvePayment records the charge outcome for the in-flight payment.
func (f *Fulfillment) ResolvePayment(shipping, tax, subTotal int64, success bool) error {
	if f.payment == nil {
		return errs.NewObjectNotFoundError("payment", f.id)
	}
	return f.payment.Resolve(shipping, tax, subTotal, success)
}

// OpenShipment books a shipment for the fulfillment's items. Legal only while
// processing, and only once.
func (f *Fulfillment) OpenShipment(at time.Time) error {
	if f.status != FulfillmentStatusProcessing {
		return fmt.Errorf("%w: cannot open shipment for %s fulfillment", ErrInvalidTransition, f.status)
	}
	if f.shipment != nil {
		return errs.NewValueIsInvalidError("fulfillment already has a shipment")
	}

	shipment, err := NewShipment(f.id, f.items, at)
	if err != nil {
		return err
	}
	f.shipment = shipment
	return nil
}

// UpdateShipmentStatus records a carrier label against the fulfillment's shipment.
func (f *Fulfillment) UpdateShipmentStatus(label string, at time.Time) error {
	if f.shipment == nil {
		return errs.NewObjectNotFoundError("shipment", f.id)
	}
	return f.shipment.UpdateStatus(label, at)
}

// Reevaluate derives the fulfillment status from its shipment and payment.
// A fulfillment completes only when both its shipment and payment are
// successfully terminal; it fails as soon as either fails. Returns true when
// the status changed.
func (f *Fulfillment) Reevaluate() bool {
	if f.status != FulfillmentStatusProcessing {
		return false
	}

	paymentFailed := f.payment != nil && f.payment.Status() == PaymentStatusFailed
	shipmentFailed := f.shipment != nil && f.shipment.Failed()
	if paymentFailed || shipmentFailed {
		f.status = FulfillmentStatusFailed
		return true
	}

	paymentSettled := f.payment != nil && f.payment.Status() == PaymentStatusSuccess
	shipmentDelivered := f.shipment != nil && f.shipment.Delivered()
	if paymentSettled && shipmentDelivered {
		f.status = FulfillmentStatusCompleted
		return true
	}

	return false
}

// Cancel terminalizes the fulfillment. Legal from any non-terminal status.
func (f *Fulfillment) Cancel() error {
	newStatus, err := f.status.Transition(FulfillmentStatusCancelled)
	if err != nil {
		return err
	}

	f.status = newStatus
	return nil
}

// Remediate returns a failed fulfillment to pending so it can be retried.
func (f *Fulfillment) Remediate() error {
	if f.status != FulfillmentStatusFailed {
		return fmt.Errorf("%w: fulfillment %s -> %s", ErrInvalidTransition, f.status, FulfillmentStatusPending)
	}

	f.status = FulfillmentStatusPending
	f.payment = nil
	f.shipment = nil
	return nil
}
