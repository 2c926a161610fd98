package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for the fulfillment lifecycle. It holds the
// customer's line items, the fulfillments they were split into, and the
// aggregate status derived from the fulfillments.
//
// Invariants:
//   - Once fulfillments exist, the union of their item quantities equals the
//     original item quantities exactly (no loss, no duplication).
//   - Status transitions follow the Status state machine; recomputation from
//     children never overwrites a terminal status.
//   - Orders are never deleted, only terminalized (completed or cancelled).
type Order struct {
	id           kernel.UUID
	customerID   string
	items        []OrderItem
	fulfillments []*Fulfillment
	status       Status

	isConstructed bool
}

// NewOrder creates an order from a customer submission. The order starts
// pending with no fulfillments. Fails when the customer id is missing, the
// item list is empty, or any item is invalid.
func NewOrder(id kernel.UUID, customerID string, items []OrderItem) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerID")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		items:         cloneItems(items),
		status:        StatusPending,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	customerID string,
	items []OrderItem,
	fulfillments []*Fulfillment,
	status Status,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerID")
	}
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("order status", err)
	}
	for _, f := range fulfillments {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		items:         cloneItems(items),
		fulfillments:  fulfillments,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() string { return o.customerID }

// Items returns the original line items as submitted.
func (o *Order) Items() []OrderItem { return cloneItems(o.items) }

// Fulfillments returns the order's fulfillments, empty before splitting.
func (o *Order) Fulfillments() []*Fulfillment {
	out := make([]*Fulfillment, len(o.fulfillments))
	copy(out, o.fulfillments)
	return out
}

// Status returns the current aggregate status.
func (o *Order) Status() Status { return o.status }

// FulfillmentByID finds a fulfillment of this order by its identifier.
func (o *Order) FulfillmentByID(id string) (*Fulfillment, error) {
	for _, f := range o.fulfillments {
		if f.ID() == id {
			return f, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("fulfillment", id)
}

// AttachFulfillments records the result of the initial split and recomputes
// the aggregate status. Fails when fulfillments already exist or when the
// conservation law would be violated.
func (o *Order) AttachFulfillments(fulfillments []*Fulfillment) error {
	if len(o.fulfillments) > 0 {
		return errs.NewValueIsInvalidError("order already has fulfillments")
	}
	if err := o.validateConservation(fulfillments); err != nil {
		return err
	}

	o.fulfillments = fulfillments
	o.RecomputeStatus()
	return nil
}

// ReplaceFulfillments swaps the fulfillment set for a fresh split (the amend
// path) and recomputes the aggregate status. Legal only while the order is
// pending or blocked on customer action, before any fulfillment has entered
// processing.
func (o *Order) ReplaceFulfillments(fulfillments []*Fulfillment) error {
	if o.status != StatusPending && o.status != StatusCustomerActionRequired {
		return fmt.Errorf("%w: cannot amend %s order", ErrInvalidTransition, o.status)
	}
	for _, f := range o.fulfillments {
		if f.Status() == FulfillmentStatusProcessing || f.Status() == FulfillmentStatusCompleted {
			return fmt.Errorf("%w: fulfillment %s is already %s", ErrInvalidTransition, f.ID(), f.Status())
		}
	}
	if err := o.validateConservation(fulfillments); err != nil {
		return err
	}

	o.fulfillments = fulfillments
	o.RecomputeStatus()
	return nil
}

// CanReplaceFulfillments reports whether the fulfillment set may still be
// swapped for a fresh split. Replacement is off the table once any
// fulfillment has entered processing or completed.
func (o *Order) CanReplaceFulfillments() bool {
	for _, f := range o.fulfillments {
		if f.Status() == FulfillmentStatusProcessing || f.Status() == FulfillmentStatusCompleted {
			return false
		}
	}
	return true
}

// RemediateFailures returns every failed fulfillment to pending so the next
// processing pass retries it, then recomputes the aggregate status. This is
// how an amend recovers an order whose fulfillment set can no longer be
// replaced, for example when a sibling fulfillment has already completed.
// Legal only while the order is pending or blocked on customer action.
// Returns the remediated fulfillments.
func (o *Order) RemediateFailures() ([]*Fulfillment, error) {
	if o.status != StatusPending && o.status != StatusCustomerActionRequired {
		return nil, fmt.Errorf("%w: cannot amend %s order", ErrInvalidTransition, o.status)
	}

	var remediated []*Fulfillment
	for _, f := range o.fulfillments {
		if f.Status() != FulfillmentStatusFailed {
			continue
		}
		if err := f.Remediate(); err != nil {
			return nil, err
		}
		remediated = append(remediated, f)
	}

	if len(remediated) > 0 {
		o.RecomputeStatus()
	}
	return remediated, nil
}

// Cancel terminalizes the order and all of its non-terminal fulfillments.
// Legal from any non-terminal order status; a second cancel fails with
// ErrInvalidTransition and changes nothing.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Transition(StatusCancelled)
	if err != nil {
		return err
	}

	for _, f := range o.fulfillments {
		if f.Status().IsTerminal() {
			continue
		}
		if cancelErr := f.Cancel(); cancelErr != nil {
			return cancelErr
		}
	}

	o.status = newStatus
	return nil
}

// ApplyShipmentLabel records a carrier status label against one fulfillment's
// shipment and cascades: the fulfillment is re-evaluated, then the aggregate
// status is recomputed. Returns the affected fulfillment.
func (o *Order) ApplyShipmentLabel(fulfillmentID, label string, at time.Time) (*Fulfillment, error) {
	f, err := o.FulfillmentByID(fulfillmentID)
	if err != nil {
		return nil, err
	}

	if err := f.UpdateShipmentStatus(label, at); err != nil {
		return nil, err
	}

	f.Reevaluate()
	o.RecomputeStatus()
	return f, nil
}

// RecomputeStatus derives the aggregate status from the fulfillment statuses
// and applies it. A pure function of the child statuses (see DeriveStatus);
// terminal order statuses are never overwritten. Returns the resulting status.
func (o *Order) RecomputeStatus() Status {
	if len(o.fulfillments) == 0 || o.status.IsTerminal() {
		return o.status
	}

	statuses := make([]FulfillmentStatus, len(o.fulfillments))
	for i, f := range o.fulfillments {
		statuses[i] = f.Status()
	}

	o.status = DeriveStatus(statuses)
	return o.status
}

// DeriveStatus computes the order status implied by a set of fulfillment
// statuses, by precedence:
//
//  1. any unavailable or failed fulfillment: customerActionRequired
//  2. every fulfillment completed (cancelled ones ignored, at least one
//     completed): completed
//  3. every fulfillment cancelled: cancelled
//  4. any fulfillment processing: processing
//  5. otherwise: pending
func DeriveStatus(statuses []FulfillmentStatus) Status {
	if len(statuses) == 0 {
		return StatusPending
	}

	var completed, cancelled, processing int
	for _, s := range statuses {
		switch s {
		case FulfillmentStatusUnavailable, FulfillmentStatusFailed:
			return StatusCustomerActionRequired
		case FulfillmentStatusCompleted:
			completed++
		case FulfillmentStatusCancelled:
			cancelled++
		case FulfillmentStatusProcessing:
			processing++
		case FulfillmentStatusPending:
		}
	}

	switch {
	case completed > 0 && completed+cancelled == len(statuses):
		return StatusCompleted
	case cancelled == len(statuses):
		return StatusCancelled
	case processing > 0:
		return StatusProcessing
	default:
		return StatusPending
	}
}

// validateConservation checks that the fulfillments partition the order's
// items exactly: every SKU's quantity is preserved, nothing is lost or
// duplicated.
func (o *Order) validateConservation(fulfillments []*Fulfillment) error {
	expected := totalQuantity(o.items)
	actual := make(map[string]int, len(expected))
	for _, f := range fulfillments {
		if err := f.Validate(); err != nil {
			return err
		}
		for sku, qty := range totalQuantity(f.items) {
			actual[sku] += qty
		}
	}

	if len(actual) != len(expected) {
		return errs.NewValueIsInvalidError("fulfillments do not cover the order's items")
	}
	for sku, qty := range expected {
		if actual[sku] != qty {
			return errs.NewValueIsInvalidErrorWithCause(
				"fulfillment items",
				fmt.Errorf("%s: want quantity %d, fulfillments hold %d", sku, qty, actual[sku]),
			)
		}
	}
	return nil
}
