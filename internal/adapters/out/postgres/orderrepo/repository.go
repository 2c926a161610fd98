package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its full object graph to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The fulfillment graph is
// replaced wholesale: an amend swaps the entire fulfillment set, so dependent
// rows are rewritten rather than diffed. The original order items are
// immutable and left untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"customer_id": dto.CustomerID, "status": dto.Status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	// Fulfillment ids embed the order id, so dependent rows are addressable
	// without loading the old graph.
	prefix := aggregate.ID().String() + ":%"
	for _, model := range []any{&FulfillmentItemDTO{}, &ShipmentDTO{}, &PaymentDTO{}} {
		if err := tx.Where("fulfillment_id LIKE ?", prefix).Delete(model).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("order_id = ?", dto.ID).Delete(&FulfillmentDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Fulfillments) > 0 {
		if err := tx.Create(&dto.Fulfillments).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full object graph.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withGraph(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every order, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withGraph(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetByFulfillmentID retrieves the order owning the given fulfillment.
func (r *GormOrderRepository) GetByFulfillmentID(ctx context.Context, fulfillmentID string) (*order.Order, error) {
	if fulfillmentID == "" {
		return nil, errs.NewValueIsRequiredError("fulfillmentID")
	}

	var fulfillmentDTO FulfillmentDTO
	err := r.db.WithContext(ctx).
		Select("id", "order_id").
		First(&fulfillmentDTO, "id = ?", fulfillmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fulfillment", fulfillmentID)
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(fulfillmentDTO.OrderID[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// GetAllNonTerminal retrieves orders that are not completed or cancelled.
func (r *GormOrderRepository) GetAllNonTerminal(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withGraph(ctx).
		Where("status NOT IN ?", []string{order.StatusCompleted.String(), order.StatusCancelled.String()}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// withGraph preloads the aggregate's children in their domain order.
func (r *GormOrderRepository) withGraph(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Fulfillments", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Fulfillments.Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Fulfillments.Shipment").
		Preload("Fulfillments.Payment")
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
