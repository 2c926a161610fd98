// Package availability implements ports.AvailabilityProvider on top of static
// configuration. Each SKU maps deterministically to a warehouse unless
// configuration pins it to a location or marks it out of stock.
package availability

import (
	"context"
	"hash/fnv"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// defaultWarehouses are the locations SKUs fall back to when configuration
// does not pin them anywhere.
var defaultWarehouses = []string{"Warehouse A", "Warehouse B"}

// StaticProvider answers availability from configuration. Unconfigured SKUs
// are assigned a default warehouse by hashing, so the same SKU always lands
// in the same location.
type StaticProvider struct {
	locations  map[string]string
	outOfStock map[string]bool
}

// NewStaticProvider creates a provider with the given pinned locations and
// out of stock SKUs. Both arguments may be nil.
func NewStaticProvider(locations map[string]string, outOfStock []string) *StaticProvider {
	stock := make(map[string]bool, len(outOfStock))
	for _, sku := range outOfStock {
		stock[sku] = true
	}

	return &StaticProvider{
		locations:  locations,
		outOfStock: stock,
	}
}

// Reserve returns the location that can fulfill the given SKU.
// Returns ports.ErrItemUnavailable for out of stock SKUs and
// ports.ErrUpstreamUnavailable when the context is already done.
func (p *StaticProvider) Reserve(ctx context.Context, sku string) (string, error) {
	if sku == "" {
		return "", errs.NewValueIsRequiredError("sku")
	}

	if err := ctx.Err(); err != nil {
		return "", ports.ErrUpstreamUnavailable
	}

	if p.outOfStock[sku] {
		return "", ports.ErrItemUnavailable
	}

	if location, ok := p.locations[sku]; ok {
		return location, nil
	}

	return defaultWarehouses[skuHash(sku)%uint32(len(defaultWarehouses))], nil
}

func skuHash(sku string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sku))
	return h.Sum32()
}
