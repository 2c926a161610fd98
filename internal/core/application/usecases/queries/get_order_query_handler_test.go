package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker without recording.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetOrderQueryHandler
	allHandler queries.GetAllOrdersQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.FulfillmentDTO{},
		&orderrepo.FulfillmentItemDTO{},
		&orderrepo.ShipmentDTO{},
		&orderrepo.PaymentDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.allHandler = queries.NewGetAllOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, fulfillments, fulfillment_items, shipments, payments").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) item(sku string, quantity int) order.OrderItem {
	item, err := order.RestoreOrderItem(sku, sku, "test sneaker", quantity)
	suite.Require().NoError(err)
	return item
}

// seedProcessingOrder persists an order whose single fulfillment is
// processing with a paid payment and a booked shipment.
func (suite *GetOrderQueryHandlerTestSuite) seedProcessingOrder() *order.Order {
	id := kernel.NewUUID()
	items := []order.OrderItem{suite.item("Nike Air Force Ones", 2)}
	aggregate, err := order.NewOrder(id, "customer-42", items)
	suite.Require().NoError(err)

	f, err := order.NewFulfillment(id.String()+":1", "Warehouse A", items, true)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachFulfillments([]*order.Fulfillment{f}))
	suite.Require().NoError(f.BeginProcessing())
	suite.Require().NoError(f.ResolvePayment(500, 700, 3500, true))
	suite.Require().NoError(f.OpenShipment(time.Now()))
	aggregate.RecomputeStatus()

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_FullBreakdown() {
	aggregate := suite.seedProcessingOrder()

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(response.ID.IsEqual(aggregate.ID()))
	suite.Equal("customer-42", response.CustomerID)
	suite.Equal("processing", response.Status)
	suite.Require().Len(response.Items, 1)
	suite.Equal("Nike Air Force Ones", response.Items[0].SKU)
	suite.Equal(2, response.Items[0].Quantity)

	suite.Require().Len(response.Fulfillments, 1)
	f := response.Fulfillments[0]
	suite.Equal(aggregate.ID().String()+":1", f.ID)
	suite.Equal("Warehouse A", f.Location)
	suite.Equal("processing", f.Status)
	suite.Require().Len(f.Items, 1)

	suite.Require().NotNil(f.Shipment)
	suite.Equal(f.ID, f.Shipment.ID)
	suite.Equal("pending", f.Shipment.Status)

	suite.Require().NotNil(f.Payment)
	suite.Equal(int64(3500), f.Payment.SubTotal)
	suite.Equal(int64(4700), f.Payment.Total)
	suite.Equal("success", f.Payment.Status)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OrderWithoutFulfillments() {
	id := kernel.NewUUID()
	aggregate, err := order.NewOrder(id, "customer-7", []order.OrderItem{suite.item("Vans Old Skool", 1)})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))

	query, err := queries.NewGetOrderQuery(id)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("pending", response.Status)
	suite.Empty(response.Fulfillments)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandleAll_NewestFirst() {
	first := suite.seedProcessingOrder()
	second := suite.seedProcessingOrder()

	responses, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)
	suite.True(responses[0].ID.IsEqual(second.ID()))
	suite.True(responses[1].ID.IsEqual(first.ID()))
	suite.Equal("processing", responses[0].Status)
	suite.False(responses[0].ReceivedAt.IsZero())
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandleAll_Empty() {
	responses, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
