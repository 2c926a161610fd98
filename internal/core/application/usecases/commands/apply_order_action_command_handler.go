package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/lock"
)

// ApplyOrderActionCommandHandler handles customer actions on existing orders.
//
// An amend is how a customer unblocks an order stuck in
// customerActionRequired: failed fulfillments are remediated back to pending,
// and while no fulfillment has advanced past pending the whole set is
// re-split against current availability. A cancel terminalizes the order and
// its non-terminal fulfillments. Both actions are serialized per order so a
// concurrent carrier update or processing tick never interleaves.
type ApplyOrderActionCommandHandler struct {
	uowFactory   OrderUoWFactory
	availability ports.AvailabilityProvider
	notifier     ports.ShipmentNotifier
	locks        *lock.Registry
	splitter     services.FulfillmentSplitter
}

// NewApplyOrderActionCommandHandler creates a handler for customer actions.
func NewApplyOrderActionCommandHandler(
	uowFactory OrderUoWFactory,
	availability ports.AvailabilityProvider,
	notifier ports.ShipmentNotifier,
	locks *lock.Registry,
) ApplyOrderActionCommandHandler {
	return ApplyOrderActionCommandHandler{
		uowFactory:   uowFactory,
		availability: availability,
		notifier:     notifier,
		locks:        locks,
		splitter:     services.NewFulfillmentSplitter(),
	}
}

// Handle processes the action command.
// Loads the order, applies the action through the aggregate's own rules, and
// persists the result. Illegal actions (cancelling twice, amending a
// processing order) surface as order.ErrInvalidTransition with no state
// change. On success the orchestration engine is notified of the new status.
func (h ApplyOrderActionCommandHandler) Handle(ctx context.Context, cmd ApplyOrderActionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Action() {
	case ActionCancel:
		err = aggregate.Cancel()
	case ActionAmend:
		err = h.amend(ctx, aggregate)
	default:
		err = ErrActionIsInvalid
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyStatus(ctx, ports.StatusSignal{
		Subject: aggregate.ID().String(),
		Status:  aggregate.Status().String(),
	})
	return nil
}

// amend recovers a stuck order. Failed fulfillments go back to pending so
// the processing pass retries them. While the fulfillment set can still be
// replaced, the items are additionally re-split against current availability,
// picking up stock that has appeared since the original split. Once a
// fulfillment has completed or is processing, remediation alone applies.
func (h ApplyOrderActionCommandHandler) amend(ctx context.Context, aggregate *order.Order) error {
	if _, err := aggregate.RemediateFailures(); err != nil {
		return err
	}
	if !aggregate.CanReplaceFulfillments() {
		return nil
	}

	locations, err := resolveLocations(ctx, h.availability, aggregate.Items())
	if err != nil {
		return err
	}
	return h.splitter.Resplit(aggregate, locations)
}
