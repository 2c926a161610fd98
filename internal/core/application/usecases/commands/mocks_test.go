package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByFulfillmentID(ctx context.Context, fulfillmentID string) (*order.Order, error) {
	args := m.Called(ctx, fulfillmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNonTerminal(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAvailabilityProvider struct{ mock.Mock }

func (m *MockAvailabilityProvider) Reserve(ctx context.Context, sku string) (string, error) {
	args := m.Called(ctx, sku)
	return args.String(0), args.Error(1)
}

type MockShipmentNotifier struct{ mock.Mock }

func (m *MockShipmentNotifier) NotifyStatus(ctx context.Context, signal ports.StatusSignal) error {
	args := m.Called(ctx, signal)
	return args.Error(0)
}

// nopNotifier absorbs signals in tests that don't assert on them.
type nopNotifier struct{}

func (nopNotifier) NotifyStatus(context.Context, ports.StatusSignal) error { return nil }

func testCatalog(t *testing.T) *product.Catalog {
	t.Helper()
	catalog, err := product.DefaultCatalog()
	require.NoError(t, err)
	return catalog
}

func restoredItem(t *testing.T, sku string, quantity int) order.OrderItem {
	t.Helper()
	item, err := order.RestoreOrderItem(sku, "name "+sku, "", quantity)
	require.NoError(t, err)
	return item
}
