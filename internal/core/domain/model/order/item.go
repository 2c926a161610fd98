package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created
// through one of the factory functions.
var ErrOrderItemIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderItem must be created via NewOrderItem or RestoreOrderItem",
)

// OrderItem is a catalog item plus an ordered quantity. An OrderItem is owned
// exclusively by one order or one fulfillment at a time; it is never shared
// between fulfillments of the same order.
type OrderItem struct {
	sku         string
	name        string
	description string
	quantity    int

	guard guard.ConstructorGuard
}

// NewOrderItem creates an OrderItem from catalog reference data and a quantity.
// The quantity must be positive.
func NewOrderItem(item product.Item, quantity int) (OrderItem, error) {
	if err := item.Validate(); err != nil {
		return OrderItem{}, err
	}
	return RestoreOrderItem(item.SKU(), item.Name(), item.Description(), quantity)
}

// RestoreOrderItem reconstructs an OrderItem from its raw parts, typically
// when loading from persistence.
func RestoreOrderItem(sku, name, description string, quantity int) (OrderItem, error) {
	if sku == "" {
		return OrderItem{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return OrderItem{
		sku:         sku,
		name:        name,
		description: description,
		quantity:    quantity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the OrderItem was created through a factory function.
func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// SKU returns the item's stock keeping unit.
func (i OrderItem) SKU() string { return i.sku }

// Name returns the item's display name.
func (i OrderItem) Name() string { return i.name }

// Description returns the item's description.
func (i OrderItem) Description() string { return i.description }

// Quantity returns the ordered quantity.
func (i OrderItem) Quantity() int { return i.quantity }

// cloneItems copies an item slice so callers cannot alias internal state.
func cloneItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// totalQuantity sums quantities per SKU across items.
func totalQuantity(items []OrderItem) map[string]int {
	totals := make(map[string]int, len(items))
	for _, i := range items {
		totals[i.SKU()] += i.Quantity()
	}
	return totals
}
