package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a requested status change is not legal
// from the current status. The transition is a no-op; the original status is
// preserved.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders follow the correct workflow.
//
// State transitions:
//
//	pending ──────> processing ──────> completed
//	   │                │
//	   ├────────────────┼──> customerActionRequired ──> processing
//	   │                │             │
//	   └──> cancelled <─┴─────────────┘
//
// completed and cancelled are terminal; no transitions lead out of them.
type Status string

const (
	// StatusPending is the initial status for a submitted order.
	StatusPending Status = "pending"

	// StatusProcessing indicates fulfillments are being worked on.
	StatusProcessing Status = "processing"

	// StatusCustomerActionRequired indicates the order is blocked on the
	// customer, typically because items are unavailable or a fulfillment failed.
	StatusCustomerActionRequired Status = "customerActionRequired"

	// StatusCompleted indicates every fulfillment completed. Terminal.
	StatusCompleted Status = "completed"

	// StatusCancelled indicates the order was cancelled. Terminal.
	StatusCancelled Status = "cancelled"
)

// orderTransitions lists the legal target statuses for each order status.
var orderTransitions = map[Status][]Status{
	StatusPending:                {StatusProcessing, StatusCustomerActionRequired, StatusCancelled},
	StatusProcessing:             {StatusCompleted, StatusCustomerActionRequired, StatusCancelled},
	StatusCustomerActionRequired: {StatusProcessing, StatusCancelled},
	StatusCompleted:              {},
	StatusCancelled:              {},
}

// Validate checks that the status is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := orderTransitions[s]; !ok {
		return fmt.Errorf("%q is not a valid order status", string(s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving to the target status is legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Transition returns the target status if the move is legal, or
// ErrInvalidTransition (wrapped with detail) otherwise.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	if !s.CanTransitionTo(target) {
		return s, fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
