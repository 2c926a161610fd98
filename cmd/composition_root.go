package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/availability"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/workflow"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/lock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	catalog      *product.Catalog
	availability ports.AvailabilityProvider
	notifier     ports.ShipmentNotifier
	locks        *lock.Registry
	calculator   services.PaymentCalculator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	catalog, err := product.DefaultCatalog()
	if err != nil {
		return CompositionRoot{}, err
	}

	notifier, err := workflow.NewNotifier(config.WorkflowEngineURL, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:      catalog,
		availability: availability.NewStaticProvider(nil, config.OutOfStockSKUs),
		notifier:     notifier,
		locks:        lock.NewRegistry(),
		calculator:   services.NewPaymentCalculator(config.FraudLimit),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.catalog, c.availability, c.notifier)
}

func (c *CompositionRoot) CreateApplyOrderActionCommandHandler() commands.ApplyOrderActionCommandHandler {
	return commands.NewApplyOrderActionCommandHandler(
		c.orderUoWFactory(), c.availability, c.notifier, c.locks)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	return commands.NewUpdateShipmentStatusCommandHandler(
		c.orderUoWFactory(), c.notifier, c.locks)
}

func (c *CompositionRoot) CreateProcessFulfillmentsCommandHandler() commands.ProcessFulfillmentsCommandHandler {
	return commands.NewProcessFulfillmentsCommandHandler(
		c.orderUoWFactory(), c.calculator, c.notifier, c.locks)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllShipmentsQueryHandler() queries.GetAllShipmentsQueryHandler {
	return queries.NewGetAllShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
