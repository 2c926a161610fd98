// Package order provides domain entities and business logic for the order
// fulfillment lifecycle. It implements the Order aggregate root together with
// its child entities and their status state machines.
//
// The package includes:
//   - Order: the aggregate root holding line items, fulfillments and the
//     aggregate status derived from them
//   - Fulfillment: the unit of an order routed to one location for shipment
//     and payment
//   - Shipment: carrier progress, tracked as free-text labels with a
//     terminality rule
//   - Payment: the charge breakdown and its settlement state
//   - Status, FulfillmentStatus, PaymentStatus: state machines enforcing
//     legal transitions
//
// Key business rules:
//   - Item quantities are conserved exactly across an order's fulfillments
//   - Child status changes cascade upward: shipment/payment changes
//     re-evaluate the fulfillment, which recomputes the order status
//   - A fulfillment completes only when both its shipment and payment are
//     successfully terminal
//   - Terminal statuses (completed, cancelled, resolved payments, delivered
//     shipments) accept no further writes
package order
