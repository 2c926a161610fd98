package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
// Assembles the order row, its line items, and its fulfillments with their
// shipments and payments.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// exists under the given id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var rawID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Scan(&rawID, &response.CustomerID, &response.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID

	response.Items, err = h.orderItems(ctx, rawID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Fulfillments, err = h.fulfillments(ctx, rawID, orderID.String())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) orderItems(ctx context.Context, orderID uuid.UUID) ([]ItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sku,
			name,
			description,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ItemResponse, 0)
	for rows.Next() {
		var item ItemResponse
		if err = rows.Scan(&item.SKU, &item.Name, &item.Description, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) fulfillments(
	ctx context.Context,
	orderID uuid.UUID,
	orderKey string,
) ([]FulfillmentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.id,
			f.location,
			f.status,
			s.status,
			s.updated_at,
			p.shipping,
			p.tax,
			p.sub_total,
			p.total,
			p.status
		FROM fulfillments f
		LEFT JOIN shipments s ON s.fulfillment_id = f.id
		LEFT JOIN payments p ON p.fulfillment_id = f.id
		WHERE f.order_id = ?
		ORDER BY f.position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fulfillments := make([]FulfillmentResponse, 0)
	for rows.Next() {
		var f FulfillmentResponse
		var shipmentStatus sql.NullString
		var shipmentUpdatedAt sql.NullTime
		var shipping, tax, subTotal, total sql.NullInt64
		var paymentStatus sql.NullString

		err = rows.Scan(
			&f.ID, &f.Location, &f.Status,
			&shipmentStatus, &shipmentUpdatedAt,
			&shipping, &tax, &subTotal, &total, &paymentStatus,
		)
		if err != nil {
			return nil, err
		}

		if shipmentStatus.Valid {
			f.Shipment = &ShipmentResponse{
				ID:        f.ID,
				Status:    shipmentStatus.String,
				UpdatedAt: shipmentUpdatedAt.Time,
			}
		}
		if paymentStatus.Valid {
			f.Payment = &PaymentResponse{
				Shipping: shipping.Int64,
				Tax:      tax.Int64,
				SubTotal: subTotal.Int64,
				Total:    total.Int64,
				Status:   paymentStatus.String,
			}
		}
		fulfillments = append(fulfillments, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachFulfillmentItems(ctx, orderKey, fulfillments); err != nil {
		return nil, err
	}
	return fulfillments, nil
}

func (h GetOrderQueryHandler) attachFulfillmentItems(
	ctx context.Context,
	orderKey string,
	fulfillments []FulfillmentResponse,
) error {
	// Fulfillment ids embed the order id, so one prefix query covers the set.
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			fulfillment_id,
			sku,
			name,
			description,
			quantity
		FROM fulfillment_items
		WHERE fulfillment_id LIKE ?
		ORDER BY fulfillment_id, position
	`, orderKey+":%").Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[string][]ItemResponse)
	for rows.Next() {
		var fulfillmentID string
		var item ItemResponse
		if err = rows.Scan(&fulfillmentID, &item.SKU, &item.Name, &item.Description, &item.Quantity); err != nil {
			return err
		}
		byID[fulfillmentID] = append(byID[fulfillmentID], item)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	for i := range fulfillments {
		items := byID[fulfillments[i].ID]
		if items == nil {
			items = make([]ItemResponse, 0)
		}
		fulfillments[i].Items = items
	}
	return nil
}
