package ports

import (
	"context"
	"errors"
)

// ErrItemUnavailable is returned by AvailabilityProvider when a SKU cannot be
// fulfilled from any location right now. This is a business outcome, not a
// failure: the caller groups the affected items into an unavailable
// fulfillment awaiting customer action.
var ErrItemUnavailable = errors.New("item is unavailable")

// ErrUpstreamUnavailable is returned when the availability source itself
// cannot be reached. Unlike ErrItemUnavailable this is retryable and must not
// be recorded as an availability outcome.
var ErrUpstreamUnavailable = errors.New("availability provider is unavailable")

// AvailabilityProvider answers where a SKU can be fulfilled from.
// Implementations may consult warehouse inventory, an external stock service,
// or static configuration.
type AvailabilityProvider interface {
	// Reserve returns the location that can fulfill the given SKU.
	// Returns ErrItemUnavailable when no location has stock, and
	// ErrUpstreamUnavailable when the answer cannot be obtained at all.
	Reserve(ctx context.Context, sku string) (string, error)
}
