package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAllOrdersQueryIsNotConstructed = errors.New(
		"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
	)
)

// GetAllOrdersQuery retrieves the order list, newest first.
// This is a parameterless query used for the order overview.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// GetAllOrdersQueryResponse is the summary read model of one order in the
// overview list. The full breakdown is served by GetOrderQuery.
type GetAllOrdersQueryResponse struct {
	ID         kernel.UUID
	CustomerID string
	Status     string
	ReceivedAt time.Time
}
