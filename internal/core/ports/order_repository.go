// Package ports defines the contracts between the application core and the
// infrastructure adapters: persistence, stock availability, and outbound
// notifications. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are persisted with their full object graph: fulfillments, shipments
// and payments are loaded and stored together with the root.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// fulfillments added or replaced since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByFulfillmentID retrieves the order owning the given fulfillment.
	// Fulfillments never exist without a parent, so a known fulfillment id
	// always resolves to exactly one order.
	GetByFulfillmentID(ctx context.Context, fulfillmentID string) (*order.Order, error)

	// GetAllNonTerminal retrieves orders that are not yet completed or
	// cancelled. Used by the fulfillment processing job to find work.
	GetAllNonTerminal(ctx context.Context) ([]*order.Order, error)
}
