package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// shippedOrder builds a single-fulfillment order in processing with a paid
// payment and an open shipment.
func shippedOrder(t *testing.T, id kernel.UUID) (*order.Order, *order.Fulfillment) {
	t.Helper()

	items := []order.OrderItem{restoredItem(t, "A", 1)}
	o, err := order.NewOrder(id, "customer-42", items)
	require.NoError(t, err)

	f, err := order.NewFulfillment(id.String()+":1", "Warehouse A", items, true)
	require.NoError(t, err)
	require.NoError(t, o.AttachFulfillments([]*order.Fulfillment{f}))
	require.NoError(t, f.BeginProcessing())
	require.NoError(t, f.ResolvePayment(500, 700, 3500, true))
	require.NoError(t, f.OpenShipment(time.Now()))
	o.RecomputeStatus()
	return o, f
}

func TestUpdateShipmentStatusCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	shipmentID := id.String() + ":1"
	cmd, _ := commands.NewUpdateShipmentStatusCommand(shipmentID, order.ShipmentLabelDelivered)

	aggregate, fulfillment := shippedOrder(t, id)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByFulfillmentID", mock.Anything, shipmentID).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, nopNotifier{}, lock.NewRegistry())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.FulfillmentStatusCompleted, fulfillment.Status())
	assert.Equal(t, order.StatusCompleted, aggregate.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_Handle_IntermediateLabel(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	shipmentID := id.String() + ":1"
	cmd, _ := commands.NewUpdateShipmentStatusCommand(shipmentID, "dispatched")

	aggregate, fulfillment := shippedOrder(t, id)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByFulfillmentID", mock.Anything, shipmentID).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, nopNotifier{}, lock.NewRegistry())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.FulfillmentStatusProcessing, fulfillment.Status())
	assert.Equal(t, order.StatusProcessing, aggregate.Status())
	assert.Equal(t, "dispatched", fulfillment.Shipment().Status())
}

func TestUpdateShipmentStatusCommandHandler_Handle_SignalsEveryTransition(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	shipmentID := id.String() + ":1"
	cmd, _ := commands.NewUpdateShipmentStatusCommand(shipmentID, order.ShipmentLabelDelivered)

	aggregate, _ := shippedOrder(t, id)

	repo := new(MockOrderRepository)
	repo.On("GetByFulfillmentID", mock.Anything, shipmentID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Delivery completes the fulfillment and the order, so the carrier label
	// is followed by a fulfillment signal and an order signal.
	notifier := new(MockShipmentNotifier)
	mock.InOrder(
		notifier.On("NotifyStatus", mock.Anything, ports.StatusSignal{
			Subject: ports.ShipmentSubject(shipmentID),
			Status:  order.ShipmentLabelDelivered,
		}).Return(nil).Once(),
		notifier.On("NotifyStatus", mock.Anything, ports.StatusSignal{
			Subject: shipmentID,
			Status:  string(order.FulfillmentStatusCompleted),
		}).Return(nil).Once(),
		notifier.On("NotifyStatus", mock.Anything, ports.StatusSignal{
			Subject: id.String(),
			Status:  order.StatusCompleted.String(),
		}).Return(nil).Once(),
	)

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, notifier, lock.NewRegistry())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_Handle_IntermediateLabelSkipsFulfillmentSignal(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	shipmentID := id.String() + ":1"
	cmd, _ := commands.NewUpdateShipmentStatusCommand(shipmentID, order.ShipmentLabelDispatched)

	aggregate, _ := shippedOrder(t, id)

	repo := new(MockOrderRepository)
	repo.On("GetByFulfillmentID", mock.Anything, shipmentID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	// The fulfillment stays processing, so only the label and the order
	// status are signaled.
	notifier := new(MockShipmentNotifier)
	mock.InOrder(
		notifier.On("NotifyStatus", mock.Anything, ports.StatusSignal{
			Subject: ports.ShipmentSubject(shipmentID),
			Status:  order.ShipmentLabelDispatched,
		}).Return(nil).Once(),
		notifier.On("NotifyStatus", mock.Anything, ports.StatusSignal{
			Subject: id.String(),
			Status:  order.StatusProcessing.String(),
		}).Return(nil).Once(),
	)

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, notifier, lock.NewRegistry())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_Handle_TerminalShipment(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	shipmentID := id.String() + ":1"

	aggregate, _ := shippedOrder(t, id)
	_, err := aggregate.ApplyShipmentLabel(shipmentID, order.ShipmentLabelDelivered, time.Now())
	require.NoError(t, err)

	cmd, _ := commands.NewUpdateShipmentStatusCommand(shipmentID, "booked")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByFulfillmentID", mock.Anything, shipmentID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, nopNotifier{}, lock.NewRegistry())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrShipmentTerminal)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateShipmentStatusCommandHandler_Handle_UnknownShipment(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateShipmentStatusCommand("unknown:1", "booked")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByFulfillmentID", mock.Anything, "unknown:1").
			Return(nil, errs.NewObjectNotFoundError("order", "unknown:1")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipmentStatusCommandHandler(factory, nopNotifier{}, lock.NewRegistry())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
