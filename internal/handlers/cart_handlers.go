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

// CartHandlers handles the session cart HTTP requests
type CartHandlers struct {
	sessions   *session.Manager
	catalogSvc services.CatalogService
}

// NewCartHandlers creates a new cart handlers instance
func NewCartHandlers(sessions *session.Manager, catalogSvc services.CatalogService) *CartHandlers {
	return &CartHandlers{
		sessions:   sessions,
		catalogSvc: catalogSvc,
	}
}

// CartResponse is the cart contents plus running total
type CartResponse struct {
	Lines []models.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

// GetCart returns the current cart contents and total.
//
//	@Summary	Current cart
//	@Tags		cart
//	@Produce	json
//	@Router		/v1/cart [get]
func (h *CartHandlers) GetCart(c echo.Context) error {
	sessionID, ok := common.GetSessionIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	lines, total, ok := h.sessions.CartSnapshot(sessionID)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return c.JSON(http.StatusOK, CartResponse{Lines: lines, Total: total})
}

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// AddCartItem copies the item's current name and price into a new cart
// line. Adding the same item again appends another line; lines are not
// merged.
//
//	@Summary	Add an item to the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Router		/v1/cart/items [post]
func (h *CartHandlers) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID, ok := common.GetSessionIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.ItemID <= 0 {
		return common.SendValidationError(c, "item_id", "item_id must be positive")
	}
	if err := common.ValidatePositiveInteger(req.Quantity, "quantity", 1000); err != nil {
		return common.SendValidationError(c, "quantity", err.Error())
	}

	item, err := h.catalogSvc.GetItem(ctx, req.ItemID)
	if err != nil {
		log.Printf("cart item lookup failed: %v", err)
		return common.SendServerError(c, "Failed to look up menu item")
	}
	if item == nil {
		return common.SendNotFoundError(c, "Menu item")
	}

	if !h.sessions.AddToCart(sessionID, item.ID, item.Name, item.Price, req.Quantity) {
		return common.SendUnauthorizedError(c)
	}

	lines, total, _ := h.sessions.CartSnapshot(sessionID)
	return c.JSON(http.StatusOK, CartResponse{Lines: lines, Total: total})
}

// ClearCart empties the cart without placing an order.
//
//	@Summary	Clear the cart
//	@Tags		cart
//	@Router		/v1/cart [delete]
func (h *CartHandlers) ClearCart(c echo.Context) error {
	sessionID, ok := common.GetSessionIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if !h.sessions.ClearCart(sessionID) {
		return common.SendUnauthorizedError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
