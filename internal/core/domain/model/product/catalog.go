package product

import "fulfillment/internal/pkg/errs"

// Catalog is a read-only lookup from SKU to item reference data.
//
// Registration order matters: when the same SKU is registered more than once,
// the most recently registered entry is authoritative on lookup. Duplicate
// entries observed in the source data are treated as catalog versions.
type Catalog struct {
	entries []Item
	bySKU   map[string]int
}

// NewCatalog creates a catalog from the given items. Invalid items are
// rejected; later entries supersede earlier ones with the same SKU.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Item, 0, len(items)),
		bySKU:   make(map[string]int, len(items)),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		c.entries = append(c.entries, item)
		c.bySKU[item.SKU()] = len(c.entries) - 1
	}

	return c, nil
}

// Lookup resolves a SKU to its authoritative item.
// Returns an object-not-found error for unknown SKUs.
func (c *Catalog) Lookup(sku string) (Item, error) {
	idx, ok := c.bySKU[sku]
	if !ok {
		return Item{}, errs.NewObjectNotFoundError("sku", sku)
	}
	return c.entries[idx], nil
}

// Items returns all registered entries in registration order, including
// superseded duplicates.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.entries))
	copy(out, c.entries)
	return out
}
