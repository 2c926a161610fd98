package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
	ErrShipmentIDIsRequired = errors.New("shipment id is required")
)

// GetShipmentQuery retrieves one shipment with the items it carries.
type GetShipmentQuery struct {
	shipmentID string

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query to retrieve a single shipment.
func NewGetShipmentQuery(shipmentID string) (GetShipmentQuery, error) {
	if shipmentID == "" {
		return GetShipmentQuery{}, ErrShipmentIDIsRequired
	}

	return GetShipmentQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentQueryIsNotConstructed if validation fails.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to retrieve.
func (q GetShipmentQuery) ShipmentID() string {
	return q.shipmentID
}

// GetShipmentQueryResponse is the read model of one shipment with its items.
type GetShipmentQueryResponse struct {
	Shipment ShipmentResponse
	Items    []ItemResponse
}
