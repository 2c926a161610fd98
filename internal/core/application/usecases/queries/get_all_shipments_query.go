package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAllShipmentsQueryIsNotConstructed = errors.New(
		"GetAllShipmentsQuery must be created via NewGetAllShipmentsQuery constructor",
	)
)

// GetAllShipmentsQuery retrieves every shipment, most recently updated first.
// This is a parameterless query used for the shipment overview.
type GetAllShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllShipmentsQuery creates a query to retrieve all shipments.
func NewGetAllShipmentsQuery() GetAllShipmentsQuery {
	return GetAllShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllShipmentsQueryIsNotConstructed if validation fails.
func (q GetAllShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllShipmentsQueryIsNotConstructed)
}
