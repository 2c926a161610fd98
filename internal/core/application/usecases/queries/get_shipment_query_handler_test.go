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

type GetShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetShipmentQueryHandler
	allHandler queries.GetAllShipmentsQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetShipmentQueryHandler(db)
	suite.allHandler = queries.NewGetAllShipmentsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, fulfillments, fulfillment_items, shipments, payments").Error)
}

func (suite *GetShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedShipment persists an order with a booked shipment and returns the
// shipment id.
func (suite *GetShipmentQueryHandlerTestSuite) seedShipment(openedAt time.Time) string {
	id := kernel.NewUUID()
	item, err := order.RestoreOrderItem("Nike Air Force Ones", "Nike Air Force Ones", "test sneaker", 2)
	suite.Require().NoError(err)
	items := []order.OrderItem{item}

	aggregate, err := order.NewOrder(id, "customer-42", items)
	suite.Require().NoError(err)

	f, err := order.NewFulfillment(id.String()+":1", "Warehouse A", items, true)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachFulfillments([]*order.Fulfillment{f}))
	suite.Require().NoError(f.BeginProcessing())
	suite.Require().NoError(f.ResolvePayment(500, 700, 3500, true))
	suite.Require().NoError(f.OpenShipment(openedAt))
	aggregate.RecomputeStatus()

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), aggregate))
	return f.ID()
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_ReturnsShipmentWithItems() {
	shipmentID := suite.seedShipment(time.Now())

	query, err := queries.NewGetShipmentQuery(shipmentID)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(shipmentID, response.Shipment.ID)
	suite.Equal("pending", response.Shipment.Status)
	suite.False(response.Shipment.UpdatedAt.IsZero())
	suite.Require().Len(response.Items, 1)
	suite.Equal("Nike Air Force Ones", response.Items[0].SKU)
	suite.Equal(2, response.Items[0].Quantity)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_NotFound() {
	query, err := queries.NewGetShipmentQuery(kernel.NewUUID().String() + ":1")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandleAll_MostRecentFirst() {
	older := suite.seedShipment(time.Now().Add(-time.Hour))
	newer := suite.seedShipment(time.Now())

	responses, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllShipmentsQuery())
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)
	suite.Equal(newer, responses[0].ID)
	suite.Equal(older, responses[1].ID)
	suite.Equal("pending", responses[0].Status)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandleAll_Empty() {
	responses, err := suite.allHandler.Handle(context.Background(), queries.NewGetAllShipmentsQuery())
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func TestGetShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentQueryHandlerTestSuite))
}
