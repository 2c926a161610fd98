package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves the order overview from the database.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders, newest first.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]GetAllOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAllOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			created_at
		FROM orders
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAllOrdersQueryResponse
		var rawID uuid.UUID

		err = rows.Scan(&rawID, &response.CustomerID, &response.Status, &response.ReceivedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
