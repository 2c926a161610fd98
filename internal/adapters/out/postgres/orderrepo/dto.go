// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between the domain object graph
// (order, fulfillments, shipments, payments) and relational tables.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate's children are stored in dependent tables and loaded eagerly:
// an order row is never read without its fulfillments.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID   string    `gorm:"index"`
	Status       string    `gorm:"index"`
	CreatedAt    time.Time
	Items        []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Fulfillments []FulfillmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one original line item of an order. Position
// preserves submission order, which the splitter depends on.
type OrderItemDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	SKU         string
	Name        string
	Description string
	Quantity    int
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// FulfillmentDTO represents one fulfillment of an order. The id embeds the
// owning order's id ("<orderID>:n") and doubles as the shipment id.
type FulfillmentDTO struct {
	ID       string    `gorm:"primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	Position int
	Location string
	Status   string
	Items    []FulfillmentItemDTO `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
	Shipment *ShipmentDTO         `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
	Payment  *PaymentDTO          `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for fulfillments.
func (FulfillmentDTO) TableName() string {
	return "fulfillments"
}

// FulfillmentItemDTO represents one item owned by a fulfillment.
type FulfillmentItemDTO struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	FulfillmentID string `gorm:"index"`
	Position      int
	SKU           string
	Name          string
	Description   string
	Quantity      int
}

// TableName specifies the database table name for fulfillment items.
func (FulfillmentItemDTO) TableName() string {
	return "fulfillment_items"
}

// ShipmentDTO represents a fulfillment's shipment. Shipments book the whole
// fulfillment, so item rows are not duplicated here; the shipment is restored
// with its fulfillment's items.
type ShipmentDTO struct {
	FulfillmentID string `gorm:"primaryKey"`
	Status        string
	// The domain owns this timestamp; gorm must not touch it.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// PaymentDTO represents a fulfillment's payment. Amounts are in cents.
type PaymentDTO struct {
	FulfillmentID string `gorm:"primaryKey"`
	Shipping      int64
	Tax           int64
	SubTotal      int64
	Total         int64
	Status        string
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:     orderID,
			Position:    i,
			SKU:         item.SKU(),
			Name:        item.Name(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
		})
	}

	fulfillments := aggregate.Fulfillments()
	fulfillmentDTOs := make([]FulfillmentDTO, 0, len(fulfillments))
	for i, f := range fulfillments {
		fulfillmentDTOs = append(fulfillmentDTOs, fulfillmentFromDomain(orderID, i, f))
	}

	return OrderDTO{
		ID:           orderID,
		CustomerID:   aggregate.CustomerID(),
		Status:       aggregate.Status().String(),
		Items:        itemDTOs,
		Fulfillments: fulfillmentDTOs,
	}
}

func fulfillmentFromDomain(orderID uuid.UUID, position int, f *order.Fulfillment) FulfillmentDTO {
	items := f.Items()
	itemDTOs := make([]FulfillmentItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, FulfillmentItemDTO{
			FulfillmentID: f.ID(),
			Position:      i,
			SKU:           item.SKU(),
			Name:          item.Name(),
			Description:   item.Description(),
			Quantity:      item.Quantity(),
		})
	}

	dto := FulfillmentDTO{
		ID:       f.ID(),
		OrderID:  orderID,
		Position: position,
		Location: f.Location(),
		Status:   string(f.Status()),
		Items:    itemDTOs,
	}

	if shipment := f.Shipment(); shipment != nil {
		dto.Shipment = &ShipmentDTO{
			FulfillmentID: f.ID(),
			Status:        shipment.Status(),
			UpdatedAt:     shipment.UpdatedAt(),
		}
	}
	if payment := f.Payment(); payment != nil {
		dto.Payment = &PaymentDTO{
			FulfillmentID: f.ID(),
			Shipping:      payment.Shipping(),
			Tax:           payment.Tax(),
			SubTotal:      payment.SubTotal(),
			Total:         payment.Total(),
			Status:        string(payment.Status()),
		}
	}
	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the full object graph using the Restore factories.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	fulfillments := make([]*order.Fulfillment, 0, len(dto.Fulfillments))
	for _, fulfillmentDTO := range dto.Fulfillments {
		f, fulfillmentErr := fulfillmentToDomain(fulfillmentDTO)
		if fulfillmentErr != nil {
			return nil, fulfillmentErr
		}
		fulfillments = append(fulfillments, f)
	}

	return order.RestoreOrder(id, dto.CustomerID, items, fulfillments, order.Status(dto.Status))
}

func fulfillmentToDomain(dto FulfillmentDTO) (*order.Fulfillment, error) {
	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := order.RestoreOrderItem(itemDTO.SKU, itemDTO.Name, itemDTO.Description, itemDTO.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var shipment *order.Shipment
	if dto.Shipment != nil {
		var err error
		shipment, err = order.RestoreShipment(dto.ID, items, dto.Shipment.Status, dto.Shipment.UpdatedAt)
		if err != nil {
			return nil, err
		}
	}

	var payment *order.Payment
	if dto.Payment != nil {
		var err error
		payment, err = order.RestorePayment(
			dto.Payment.Shipping,
			dto.Payment.Tax,
			dto.Payment.SubTotal,
			dto.Payment.Total,
			order.PaymentStatus(dto.Payment.Status),
		)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreFulfillment(dto.ID, dto.Location, items, order.FulfillmentStatus(dto.Status), shipment, payment)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := order.RestoreOrderItem(dto.SKU, dto.Name, dto.Description, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
