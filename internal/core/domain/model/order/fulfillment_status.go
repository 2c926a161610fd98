package order

import "fmt"

// FulfillmentStatus represents the lifecycle state of a fulfillment.
//
// State transitions:
//
//	unavailable ──┬──> processing ──┬──> completed
//	pending ──────┘        │        └──> failed ──> pending (remediation)
//	   │                   │                │
//	   └──> cancelled <────┴────────────────┘
//
// unavailable fulfillments may also be cancelled directly (the amend path).
// completed and cancelled are terminal.
type FulfillmentStatus string

const (
	// FulfillmentStatusUnavailable marks a fulfillment holding items no
	// location can currently supply.
	FulfillmentStatusUnavailable FulfillmentStatus = "unavailable"

	// FulfillmentStatusPending marks a fulfillment awaiting processing.
	FulfillmentStatusPending FulfillmentStatus = "pending"

	// FulfillmentStatusProcessing marks a fulfillment whose payment and
	// shipment are in flight.
	FulfillmentStatusProcessing FulfillmentStatus = "processing"

	// FulfillmentStatusCompleted marks a fulfillment whose shipment and
	// payment both reached a successful terminal state. Terminal.
	FulfillmentStatusCompleted FulfillmentStatus = "completed"

	// FulfillmentStatusCancelled marks a fulfillment that will not be
	// processed. Terminal.
	FulfillmentStatusCancelled FulfillmentStatus = "cancelled"

	// FulfillmentStatusFailed marks a fulfillment whose payment or shipment
	// failed. May be remediated back to pending or cancelled.
	FulfillmentStatusFailed FulfillmentStatus = "failed"
)

// fulfillmentTransitions lists the legal target statuses for each fulfillment status.
var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentStatusUnavailable: {FulfillmentStatusProcessing, FulfillmentStatusCancelled},
	FulfillmentStatusPending:     {FulfillmentStatusProcessing, FulfillmentStatusCancelled},
	FulfillmentStatusProcessing:  {FulfillmentStatusCompleted, FulfillmentStatusFailed, FulfillmentStatusCancelled},
	FulfillmentStatusFailed:      {FulfillmentStatusCancelled, FulfillmentStatusPending},
	FulfillmentStatusCompleted:   {},
	FulfillmentStatusCancelled:   {},
}

// Validate checks that the status is one of the defined fulfillment statuses.
func (s FulfillmentStatus) Validate() error {
	if _, ok := fulfillmentTransitions[s]; !ok {
		return fmt.Errorf("%q is not a valid fulfillment status", string(s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s FulfillmentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s FulfillmentStatus) IsTerminal() bool {
	return s == FulfillmentStatusCompleted || s == FulfillmentStatusCancelled
}

// CanTransitionTo reports whether moving to the target status is legal.
func (s FulfillmentStatus) CanTransitionTo(target FulfillmentStatus) bool {
	for _, t := range fulfillmentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Transition returns the target status if the move is legal, or
// ErrInvalidTransition (wrapped with detail) otherwise.
func (s FulfillmentStatus) Transition(target FulfillmentStatus) (FulfillmentStatus, error) {
	if err := target.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	if !s.CanTransitionTo(target) {
		return s, fmt.Errorf("%w: fulfillment %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
