package handlers

import (
	"log"
	"net/http"

	"dinepos/internal/common"
	"dinepos/internal/models"
	"dinepos/internal/services"
	"dinepos/internal/session"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order HTTP requests
type OrderHandlers struct {
	orderSvc services.OrderService
	sessions *session.Manager
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderSvc services.OrderService, sessions *session.Manager) *OrderHandlers {
	return &OrderHandlers{
		orderSvc: orderSvc,
		sessions: sessions,
	}
}

// CreateOrderRequest represents the submit payload
type CreateOrderRequest struct {
	TableID int64 `json:"table_id"`
}

// CreateOrderResponse represents a placed order
type CreateOrderResponse struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// CreateOrder submits the session cart for the given table. The cart is
// cleared only after the order commits; on failure it stays intact so the
// waiter can retry.
//
//	@Summary	Submit the cart as an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Router		/v1/orders [post]
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	sessionID, ok := common.GetSessionIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.TableID <= 0 {
		return common.SendValidationError(c, "table_id", "table_id must be positive")
	}

	lines, total, ok := h.sessions.CartSnapshot(sessionID)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if len(lines) == 0 {
		return common.SendValidationError(c, "cart", "cart is empty")
	}

	orderID, err := h.orderSvc.Submit(ctx, req.TableID, userID, lines, total)
	if err != nil {
		log.Printf("order submission failed: %v", err)
		return common.SendServerError(c, "Failed to place order")
	}

	h.sessions.ClearCart(sessionID)

	return c.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:     orderID,
		TotalAmount: total,
		Status:      models.StatusPending,
	})
}

// ListOrders returns the active-orders view (orders joined with table
// number and waiter), newest first. Read failures degrade to an empty list.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Router		/v1/orders [get]
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	orders, err := h.orderSvc.ListOrders(c.Request().Context())
	if err != nil {
		log.Printf("order list failed: %v", err)
		return c.JSON(http.StatusOK, []*models.Order{})
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// OrderDetailResponse is a header with its lines
type OrderDetailResponse struct {
	Order *models.Order       `json:"order"`
	Lines []*models.OrderLine `json:"lines"`
}

// GetOrder returns one order header with its lines.
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Router		/v1/orders/{id} [get]
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, lines, err := h.orderSvc.GetOrder(c.Request().Context(), id)
	if err != nil {
		log.Printf("order fetch failed: %v", err)
		return common.SendServerError(c, "Failed to fetch order")
	}
	if order == nil {
		return common.SendNotFoundError(c, "Order")
	}
	if lines == nil {
		lines = []*models.OrderLine{}
	}
	return c.JSON(http.StatusOK, OrderDetailResponse{Order: order, Lines: lines})
}
