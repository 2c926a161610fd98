package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Resolves the requested SKUs against the catalog, splits the order into
// per-location fulfillments based on current availability, and persists the
// aggregate. The resulting order is pending, or customerActionRequired when
// some items cannot be fulfilled right now.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	catalog      *product.Catalog
	availability ports.AvailabilityProvider
	notifier     ports.ShipmentNotifier
	splitter     services.FulfillmentSplitter
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, the product
// catalog for SKU resolution, and the availability provider for the split.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog *product.Catalog,
	availability ports.AvailabilityProvider,
	notifier ports.ShipmentNotifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		catalog:      catalog,
		availability: availability,
		notifier:     notifier,
		splitter:     services.NewFulfillmentSplitter(),
	}
}

// Handle processes the order placement command.
// Unknown SKUs fail the whole command before anything is persisted; an
// unreachable availability source aborts with ports.ErrUpstreamUnavailable so
// the caller can retry. On success the order is committed together with its
// fulfillments and the orchestration engine is notified of the initial status.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]order.OrderItem, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		catalogItem, err := h.catalog.Lookup(line.SKU)
		if err != nil {
			return err
		}
		item, err := order.NewOrderItem(catalogItem, line.Quantity)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), items)
	if err != nil {
		return err
	}

	locations, err := resolveLocations(ctx, h.availability, items)
	if err != nil {
		return err
	}
	if err = h.splitter.Split(newOrder, locations); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyStatus(ctx, ports.StatusSignal{
		Subject: newOrder.ID().String(),
		Status:  newOrder.Status().String(),
	})
	return nil
}
