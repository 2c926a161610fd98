package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves a single shipment read model from the
// database. The carried items are the owning fulfillment's items.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for single shipment queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no shipment
// exists under the given id.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var response GetShipmentQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			fulfillment_id,
			status,
			updated_at
		FROM shipments
		WHERE fulfillment_id = ?
	`, query.ShipmentID()).Row()
	err := row.Scan(&response.Shipment.ID, &response.Shipment.Status, &response.Shipment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID())
		}
		return GetShipmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sku,
			name,
			description,
			quantity
		FROM fulfillment_items
		WHERE fulfillment_id = ?
		ORDER BY position
	`, query.ShipmentID()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	response.Items = make([]ItemResponse, 0)
	for rows.Next() {
		var item ItemResponse
		if err = rows.Scan(&item.SKU, &item.Name, &item.Description, &item.Quantity); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		response.Items = append(response.Items, item)
	}
	if err = rows.Err(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return response, nil
}
