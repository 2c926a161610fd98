package product

import (
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory function.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("Item must be created via NewItem")

// Item is immutable reference data describing a sellable product.
// The SKU is the stable identity; the catalog may carry several entries for
// the same SKU, which are treated as successive catalog versions.
type Item struct {
	sku         string
	name        string
	description string

	guard guard.ConstructorGuard
}

// NewItem creates an Item, validating that the SKU and name are present.
func NewItem(sku, name, description string) (Item, error) {
	if sku == "" {
		return Item{}, errs.NewValueIsRequiredError("sku")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}

	return Item{
		sku:         sku,
		name:        name,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// SKU returns the item's stock keeping unit, its stable identity.
func (i Item) SKU() string {
	return i.sku
}

// Name returns the item's display name.
func (i Item) Name() string {
	return i.name
}

// Description returns the item's marketing description.
func (i Item) Description() string {
	return i.description
}
