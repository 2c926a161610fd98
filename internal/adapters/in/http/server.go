package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order fulfillment API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	applyOrderActionHandler     commands.ApplyOrderActionCommandHandler
	updateShipmentStatusHandler commands.UpdateShipmentStatusCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getAllOrdersHandler    queries.GetAllOrdersQueryHandler
	getShipmentHandler     queries.GetShipmentQueryHandler
	getAllShipmentsHandler queries.GetAllShipmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyOrderActionHandler commands.ApplyOrderActionCommandHandler,
	updateShipmentStatusHandler commands.UpdateShipmentStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getAllShipmentsHandler queries.GetAllShipmentsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		applyOrderActionHandler:     applyOrderActionHandler,
		updateShipmentStatusHandler: updateShipmentStatusHandler,
		getOrderHandler:             getOrderHandler,
		getAllOrdersHandler:         getAllOrdersHandler,
		getShipmentHandler:          getShipmentHandler,
		getAllShipmentsHandler:      getAllShipmentsHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/:action", s.ApplyOrderAction)

	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.POST("/shipments/:id/status", s.UpdateShipmentStatus)
}

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for order submission.
type NewOrder struct {
	CustomerID string         `json:"customerId"`
	Items      []NewOrderItem `json:"items"`
}

// NewOrderItem is one requested line in an order submission.
type NewOrderItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// OrderCreated is the response body for a successful order submission.
type OrderCreated struct {
	ID string `json:"id"`
}

// OrderSummary is one row in the order listing.
type OrderSummary struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Order is the full order read model with its fulfillment breakdown.
type Order struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId"`
	Status       string        `json:"status"`
	Items        []Item        `json:"items"`
	Fulfillments []Fulfillment `json:"fulfillments"`
}

// Item is one line item in an order or shipment.
type Item struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// Fulfillment is one fulfillment in the order read model.
type Fulfillment struct {
	ID       string    `json:"id"`
	Location string    `json:"location,omitempty"`
	Status   string    `json:"status"`
	Items    []Item    `json:"items"`
	Shipment *Shipment `json:"shipment,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`
}

// Shipment is the shipment read model. Shipments share their fulfillment's id.
type Shipment struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payment is the payment read model. Amounts are in cents.
type Payment struct {
	Shipping int64  `json:"shipping"`
	Tax      int64  `json:"tax"`
	SubTotal int64  `json:"subTotal"`
	Total    int64  `json:"total"`
	Status   string `json:"status"`
}

// ShipmentDetail is the shipment read model with its items.
type ShipmentDetail struct {
	Shipment Shipment `json:"shipment"`
	Items    []Item   `json:"items"`
}

// ShipmentStatusUpdate is the request body for shipment status callbacks.
type ShipmentStatusUpdate struct {
	Status string `json:"status"`
}

// CreateOrder handles POST /api/v1/orders - submits a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	lines := make([]commands.OrderLine, len(newOrder.Items))
	for i, item := range newOrder.Items {
		lines[i] = commands.OrderLine{SKU: item.SKU, Quantity: item.Quantity}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, newOrder.CustomerID, lines)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists all orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:         o.ID.String(),
			CustomerID: o.CustomerID,
			Status:     o.Status,
			ReceivedAt: o.ReceivedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// fulfillment breakdown.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(response))
}

// ApplyOrderAction handles POST /api/v1/orders/:id/:action - applies a
// customer action, "amend" or "cancel", to an order.
func (s *Server) ApplyOrderAction(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewApplyOrderActionCommand(orderID, ctx.Param("action"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid action: "+err.Error())
	}

	if handleErr := s.applyOrderActionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipments handles GET /api/v1/shipments - lists all shipments, most
// recently updated first.
func (s *Server) GetShipments(ctx echo.Context) error {
	query := queries.NewGetAllShipmentsQuery()

	shipments, err := s.getAllShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]Shipment, len(shipments))
	for i, shipment := range shipments {
		response[i] = Shipment{
			ID:        shipment.ID,
			Status:    shipment.Status,
			UpdatedAt: shipment.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:id - retrieves one shipment
// with its items.
func (s *Server) GetShipment(ctx echo.Context) error {
	query, err := queries.NewGetShipmentQuery(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	response, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ShipmentDetail{
		Shipment: Shipment{
			ID:        response.Shipment.ID,
			Status:    response.Shipment.Status,
			UpdatedAt: response.Shipment.UpdatedAt,
		},
		Items: toItems(response.Items),
	})
}

// UpdateShipmentStatus handles POST /api/v1/shipments/:id/status - records a
// carrier status callback for a shipment.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	var update ShipmentStatusUpdate
	if err := ctx.Bind(&update); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(ctx.Param("id"), update.Status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid status update: "+err.Error())
	}

	if handleErr := s.updateShipmentStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrder(response queries.GetOrderQueryResponse) Order {
	fulfillments := make([]Fulfillment, len(response.Fulfillments))
	for i, f := range response.Fulfillments {
		fulfillment := Fulfillment{
			ID:       f.ID,
			Location: f.Location,
			Status:   f.Status,
			Items:    toItems(f.Items),
		}

		if f.Shipment != nil {
			fulfillment.Shipment = &Shipment{
				ID:        f.Shipment.ID,
				Status:    f.Shipment.Status,
				UpdatedAt: f.Shipment.UpdatedAt,
			}
		}

		if f.Payment != nil {
			fulfillment.Payment = &Payment{
				Shipping: f.Payment.Shipping,
				Tax:      f.Payment.Tax,
				SubTotal: f.Payment.SubTotal,
				Total:    f.Payment.Total,
				Status:   f.Payment.Status,
			}
		}

		fulfillments[i] = fulfillment
	}

	return Order{
		ID:           response.ID.String(),
		CustomerID:   response.CustomerID,
		Status:       response.Status,
		Items:        toItems(response.Items),
		Fulfillments: fulfillments,
	}
}

func toItems(items []queries.ItemResponse) []Item {
	result := make([]Item, len(items))
	for i, item := range items {
		result[i] = Item{
			SKU:         item.SKU,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
		}
	}
	return result
}

// mapError translates use case failures to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrShipmentTerminal),
		errors.Is(err, order.ErrPaymentFinalized),
		errors.Is(err, services.ErrAlreadySplit):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrUpstreamUnavailable):
		return errorResponse(ctx, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, err.Error())
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
