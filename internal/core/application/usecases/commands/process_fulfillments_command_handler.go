package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/lock"
)

// ProcessFulfillmentsCommandHandler advances pending fulfillments through
// payment and shipment. For each pending fulfillment it charges the payment
// first; only a successful charge opens a shipment. A declined charge fails
// the fulfillment and pushes the order back to the customer.
type ProcessFulfillmentsCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.PaymentCalculator
	notifier   ports.ShipmentNotifier
	locks      *lock.Registry
	now        func() time.Time
}

// NewProcessFulfillmentsCommandHandler creates a handler for fulfillment
// processing passes.
func NewProcessFulfillmentsCommandHandler(
	uowFactory OrderUoWFactory,
	calculator services.PaymentCalculator,
	notifier ports.ShipmentNotifier,
	locks *lock.Registry,
) ProcessFulfillmentsCommandHandler {
	return ProcessFulfillmentsCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		notifier:   notifier,
		locks:      locks,
		now:        time.Now,
	}
}

// Handle processes the command.
// Collects all non-terminal orders, then processes each order under its own
// lock and transaction. A failure on one order does not stop the pass; the
// errors are joined and reported together.
func (h ProcessFulfillmentsCommandHandler) Handle(ctx context.Context, cmd ProcessFulfillmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids, err := h.collectOrderIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if err = h.processOrder(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h ProcessFulfillmentsCommandHandler) collectOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllNonTerminal(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, aggregate := range orders {
		ids = append(ids, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// processOrder advances a single order's pending fulfillments under the
// order's lock. The order is re-read inside the transaction: state may have
// moved since the ids were collected.
func (h ProcessFulfillmentsCommandHandler) processOrder(ctx context.Context, id kernel.UUID) error {
	unlock := h.locks.Lock(id.String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	var signals []ports.StatusSignal
	processed := 0
	for _, fulfillment := range aggregate.Fulfillments() {
		if fulfillment.Status() != order.FulfillmentStatusPending {
			continue
		}
		transitions, err := h.processFulfillment(fulfillment)
		if err != nil {
			return err
		}
		signals = append(signals, transitions...)
		processed++
	}
	if processed == 0 {
		return nil
	}

	aggregate.RecomputeStatus()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	signals = append(signals, ports.StatusSignal{
		Subject: aggregate.ID().String(),
		Status:  aggregate.Status().String(),
	})
	for _, signal := range signals {
		_ = h.notifier.NotifyStatus(ctx, signal)
	}
	return nil
}

// processFulfillment charges one pending fulfillment and, on success, books
// its shipment. The fulfillment ends up processing with an open shipment, or
// failed when the charge is declined. Returns one signal per fulfillment,
// payment and shipment transition made, in the order they happened.
func (h ProcessFulfillmentsCommandHandler) processFulfillment(fulfillment *order.Fulfillment) ([]ports.StatusSignal, error) {
	if err := fulfillment.BeginProcessing(); err != nil {
		return nil, err
	}
	signals := []ports.StatusSignal{{
		Subject: fulfillment.ID(),
		Status:  string(fulfillment.Status()),
	}}

	billing, err := h.calculator.Calculate(fulfillment.Items())
	if err != nil {
		return nil, err
	}

	approved := h.calculator.Authorize(billing)
	if err = fulfillment.ResolvePayment(billing.Shipping, billing.Tax, billing.SubTotal, approved); err != nil {
		return nil, err
	}
	signals = append(signals, ports.StatusSignal{
		Subject: ports.PaymentSubject(fulfillment.ID()),
		Status:  fulfillment.Payment().Status().String(),
	})

	if approved {
		if err = fulfillment.OpenShipment(h.now()); err != nil {
			return nil, err
		}
		signals = append(signals, ports.StatusSignal{
			Subject: ports.ShipmentSubject(fulfillment.ID()),
			Status:  fulfillment.Shipment().Status(),
		})
	}

	if fulfillment.Reevaluate() {
		signals = append(signals, ports.StatusSignal{
			Subject: fulfillment.ID(),
			Status:  string(fulfillment.Status()),
		})
	}
	return signals, nil
}
