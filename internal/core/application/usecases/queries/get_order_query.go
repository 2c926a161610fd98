// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the relational tables directly, bypassing the domain
// aggregate: they build flat response models for transport, never mutate
// state, and never enforce business rules.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its full fulfillment breakdown.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	response, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	CustomerID   string
	Status       string
	Items        []ItemResponse
	Fulfillments []FulfillmentResponse
}

// ItemResponse is one line item in a read model.
type ItemResponse struct {
	SKU         string
	Name        string
	Description string
	Quantity    int
}

// FulfillmentResponse is the read model of one fulfillment, with its shipment
// and payment when they exist.
type FulfillmentResponse struct {
	ID       string
	Location string
	Status   string
	Items    []ItemResponse
	Shipment *ShipmentResponse
	Payment  *PaymentResponse
}

// ShipmentResponse is the read model of one shipment. Shipments share their
// fulfillment's identifier.
type ShipmentResponse struct {
	ID        string
	Status    string
	UpdatedAt time.Time
}

// PaymentResponse is the read model of one payment. Amounts are in cents.
type PaymentResponse struct {
	Shipping int64
	Tax      int64
	SubTotal int64
	Total    int64
	Status   string
}
