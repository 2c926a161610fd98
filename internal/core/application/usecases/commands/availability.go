package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// resolveLocations asks the availability provider for a location per distinct
// SKU. Unavailable SKUs are left out of the result so the splitter groups them
// into the unavailable fulfillment; any other provider error aborts the whole
// resolution, so a flaky upstream never masquerades as an out-of-stock answer.
func resolveLocations(
	ctx context.Context,
	provider ports.AvailabilityProvider,
	items []order.OrderItem,
) (map[string]string, error) {
	locations := make(map[string]string)
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.SKU()] {
			continue
		}
		seen[item.SKU()] = true

		location, err := provider.Reserve(ctx, item.SKU())
		if errors.Is(err, ports.ErrItemUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locations[item.SKU()] = location
	}
	return locations, nil
}
