// Package services provides domain services that orchestrate business
// operations across the order aggregate and its children. It implements
// workflows that don't naturally belong to a single entity.
//
// The package includes:
//   - FulfillmentSplitter: partitions an order's items into per-location fulfillments
//   - PaymentCalculator: prices a fulfillment and authorizes the charge
//
// Domain services coordinate pure business logic; fetching availability
// answers and persisting results is the caller's responsibility.
package services
