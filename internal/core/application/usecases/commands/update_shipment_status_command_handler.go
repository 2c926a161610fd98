package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/lock"
)

// UpdateShipmentStatusCommandHandler records carrier status reports and
// cascades their consequences. A delivered label can complete the shipment's
// fulfillment and, through it, the whole order; a failed label pushes the
// order back to customerActionRequired.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.ShipmentNotifier
	locks      *lock.Registry
	now        func() time.Time
}

// NewUpdateShipmentStatusCommandHandler creates a handler for carrier status
// reports.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.ShipmentNotifier,
	locks *lock.Registry,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
		now:        time.Now,
	}
}

// Handle processes the carrier status command.
// Resolves the owning order by the shipment id, applies the label through the
// aggregate, and persists the cascaded result. Labels against an already
// terminal shipment fail with order.ErrShipmentTerminal and change nothing.
// After commit the label, any cascaded fulfillment transition, and the order
// status are signaled to the orchestration engine.
func (h UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderKey())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByFulfillmentID(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	fulfillment, err := aggregate.FulfillmentByID(cmd.ShipmentID())
	if err != nil {
		return err
	}
	statusBefore := fulfillment.Status()

	if _, err = aggregate.ApplyShipmentLabel(cmd.ShipmentID(), cmd.Status(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyStatus(ctx, ports.StatusSignal{
		Subject: ports.ShipmentSubject(fulfillment.ID()),
		Status:  cmd.Status(),
	})
	if fulfillment.Status() != statusBefore {
		_ = h.notifier.NotifyStatus(ctx, ports.StatusSignal{
			Subject: fulfillment.ID(),
			Status:  string(fulfillment.Status()),
		})
	}
	_ = h.notifier.NotifyStatus(ctx, ports.StatusSignal{
		Subject: aggregate.ID().String(),
		Status:  aggregate.Status().String(),
	})
	return nil
}
