package services

import (
	"hash/fnv"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Billing is the priced breakdown of a fulfillment charge. All amounts are in
// cents; Total is always SubTotal + Shipping + Tax.
type Billing struct {
	SubTotal int64
	Shipping int64
	Tax      int64
	Total    int64
}

// PaymentCalculator is a domain service that prices a fulfillment and
// authorizes the charge.
//
// Pricing is deterministic per SKU: unit cost and per-unit shipping are
// derived from a hash of the SKU, and tax is a flat 20% of the subtotal.
// There is no external price book; identical items always price identically.
//
// Authorization applies an optional fraud limit: charges whose total exceeds
// the limit are declined. A zero limit disables the check.
type PaymentCalculator struct {
	fraudLimit int64
}

// NewPaymentCalculator creates a PaymentCalculator with the given fraud limit
// in cents. Pass 0 to authorize every charge.
func NewPaymentCalculator(fraudLimit int64) PaymentCalculator {
	return PaymentCalculator{fraudLimit: fraudLimit}
}

// Calculate prices the given items. Fails when the item list is empty.
func (c PaymentCalculator) Calculate(items []order.OrderItem) (Billing, error) {
	if len(items) == 0 {
		return Billing{}, errs.NewValueIsRequiredError("billing items")
	}

	var b Billing
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Billing{}, err
		}
		qty := int64(item.Quantity())
		b.SubTotal += unitCost(item.SKU()) * qty
		b.Shipping += unitShipping(item.SKU()) * qty
	}
	b.Tax = b.SubTotal / 5
	b.Total = b.SubTotal + b.Shipping + b.Tax
	return b, nil
}

// Authorize reports whether the charge passes the fraud limit.
func (c PaymentCalculator) Authorize(b Billing) bool {
	return c.fraudLimit <= 0 || b.Total <= c.fraudLimit
}

// unitCost derives a stable unit price in the 3500..11999 cent range from the SKU.
func unitCost(sku string) int64 {
	return 3500 + int64(skuHash(sku)%8500)
}

// unitShipping derives a stable per-unit shipping cost in the 500..999 cent range.
func unitShipping(sku string) int64 {
	return 500 + int64(skuHash(sku)%500)
}

func skuHash(sku string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(sku))
	return h.Sum32()
}
