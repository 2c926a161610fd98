package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllShipmentsQueryHandler retrieves the shipment overview from the database.
type GetAllShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllShipmentsQueryHandler creates a handler for shipment list queries.
// Requires a GORM database connection for query execution.
func NewGetAllShipmentsQueryHandler(db *gorm.DB) GetAllShipmentsQueryHandler {
	return GetAllShipmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all shipments, most recently updated first.
func (h GetAllShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllShipmentsQuery,
) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]ShipmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			fulfillment_id,
			status,
			updated_at
		FROM shipments
		ORDER BY updated_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shipment ShipmentResponse
		if err = rows.Scan(&shipment.ID, &shipment.Status, &shipment.UpdatedAt); err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
