package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// ErrAlreadySplit is returned when Split is called on an order whose
// fulfillments already exist and the availability answers would partition the
// items differently. Re-splitting with a changed partition is only legal
// through Resplit, the amend path.
var ErrAlreadySplit = errors.New("order is already split into fulfillments")

// FulfillmentSplitter is a domain service that partitions an order's items
// into fulfillments, one per stock location, based on availability answers
// obtained by the caller.
//
// Business rules:
//   - Items sharing a location are grouped into one fulfillment.
//   - Locations are assigned in order of first appearance in the item list,
//     so the split is deterministic for a given order and availability state.
//   - Items with no location (unavailable) are collected into a single
//     trailing fulfillment awaiting customer action.
//   - Fulfillment ids are derived from the order id: "<orderID>:1",
//     "<orderID>:2", and so on.
//   - The conservation law holds by construction: every item lands in exactly
//     one fulfillment.
type FulfillmentSplitter struct{}

// NewFulfillmentSplitter creates a new FulfillmentSplitter instance.
func NewFulfillmentSplitter() FulfillmentSplitter {
	return FulfillmentSplitter{}
}

// Split partitions the order's items and attaches the resulting fulfillments.
// The locations map answers, per SKU, which location can fulfill it; SKUs
// absent from the map are treated as unavailable.
//
// Split is idempotent: calling it again on an already split order is a no-op
// when the availability answers produce the same partition the order already
// has. When the answers would partition the items differently, Split fails
// with ErrAlreadySplit and leaves the order unchanged; only the amend path
// may replace an existing split.
func (s FulfillmentSplitter) Split(o *order.Order, locations map[string]string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	fulfillments, err := s.build(o, locations)
	if err != nil {
		return err
	}

	if existing := o.Fulfillments(); len(existing) > 0 {
		if samePartition(existing, fulfillments) {
			return nil
		}
		return ErrAlreadySplit
	}
	return o.AttachFulfillments(fulfillments)
}

// Resplit discards the order's current fulfillments and partitions the items
// again, the amend path after an availability situation changed. The order
// aggregate enforces when replacement is legal.
func (s FulfillmentSplitter) Resplit(o *order.Order, locations map[string]string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	fulfillments, err := s.build(o, locations)
	if err != nil {
		return err
	}
	return o.ReplaceFulfillments(fulfillments)
}

func (s FulfillmentSplitter) build(o *order.Order, locations map[string]string) ([]*order.Fulfillment, error) {
	items := o.Items()

	// Group items by location, preserving first-appearance order. The empty
	// location collects unavailable items.
	groups := make(map[string][]order.OrderItem)
	var locationOrder []string
	unavailableSeen := false
	for _, item := range items {
		location := locations[item.SKU()]
		if location == "" {
			unavailableSeen = true
		} else if _, seen := groups[location]; !seen {
			locationOrder = append(locationOrder, location)
		}
		groups[location] = append(groups[location], item)
	}
	if unavailableSeen {
		locationOrder = append(locationOrder, "")
	}

	fulfillments := make([]*order.Fulfillment, 0, len(locationOrder))
	for i, location := range locationOrder {
		id := fmt.Sprintf("%s:%d", o.ID().String(), i+1)
		f, err := order.NewFulfillment(id, location, groups[location], location != "")
		if err != nil {
			return nil, err
		}
		fulfillments = append(fulfillments, f)
	}
	return fulfillments, nil
}

// samePartition reports whether two fulfillment sets describe the same item
// partition: the same location sequence, and per location the same items in
// the same order with the same quantities. Statuses are not compared, so a
// partition stays the same while its fulfillments progress.
func samePartition(existing, candidate []*order.Fulfillment) bool {
	if len(existing) != len(candidate) {
		return false
	}
	for i := range existing {
		if existing[i].Location() != candidate[i].Location() {
			return false
		}
		current, proposed := existing[i].Items(), candidate[i].Items()
		if len(current) != len(proposed) {
			return false
		}
		for j := range current {
			if current[j].SKU() != proposed[j].SKU() || current[j].Quantity() != proposed[j].Quantity() {
				return false
			}
		}
	}
	return true
}
