package handlers

import (
	"log"
	"net/http"

	"dinepos/internal/common"
	"dinepos/internal/models"
	"dinepos/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles menu catalog HTTP requests
type MenuHandlers struct {
	catalogSvc services.CatalogService
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(catalogSvc services.CatalogService) *MenuHandlers {
	return &MenuHandlers{catalogSvc: catalogSvc}
}

// ListMenu returns all menu items with their category names. A read failure
// degrades to an empty list so the ordering view keeps rendering.
//
//	@Summary	List menu items
//	@Tags		menu
//	@Produce	json
//	@Router		/v1/menu [get]
func (h *MenuHandlers) ListMenu(c echo.Context) error {
	items, err := h.catalogSvc.ListItems(c.Request().Context())
	if err != nil {
		log.Printf("menu list failed: %v", err)
		return c.JSON(http.StatusOK, []*models.MenuItem{})
	}
	if items == nil {
		items = []*models.MenuItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// CreateMenuItemRequest represents the add-item payload
type CreateMenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  *int64  `json:"category_id"`
}

// CreateMenuItem adds one item to the catalog.
//
//	@Summary	Add a menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Router		/v1/menu [post]
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", 100000.0); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}

	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsAvailable: true,
	}
	if err := h.catalogSvc.AddItem(ctx, item); err != nil {
		log.Printf("menu item create failed: %v", err)
		return common.SendServerError(c, "Failed to add menu item")
	}
	return c.JSON(http.StatusCreated, item)
}

// DeleteMenuItem removes an item. Deleting an id that does not exist is a
// success, matching how the floor staff use the form.
//
//	@Summary	Delete a menu item
//	@Tags		menu
//	@Router		/v1/menu/{id} [delete]
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if err := h.catalogSvc.DeleteItem(c.Request().Context(), id); err != nil {
		log.Printf("menu item delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete menu item")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories returns the category pairs used by the add-item form.
//
//	@Summary	List categories
//	@Tags		menu
//	@Produce	json
//	@Router		/v1/categories [get]
func (h *MenuHandlers) ListCategories(c echo.Context) error {
	categories, err := h.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		log.Printf("category list failed: %v", err)
		return c.JSON(http.StatusOK, []*models.Category{})
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// UploadItemImage stores an item photo in object storage.
//
//	@Summary	Upload a menu item image
//	@Tags		menu
//	@Accept		multipart/form-data
//	@Router		/v1/menu/{id}/image [post]
func (h *MenuHandlers) UploadItemImage(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read image")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := h.catalogSvc.AttachImage(c.Request().Context(), id, src, file.Size, contentType); err != nil {
		log.Printf("menu image upload failed: %v", err)
		return common.SendServerError(c, "Failed to upload image")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetItemImage returns a short-lived presigned URL for the item photo.
//
//	@Summary	Get a menu item image URL
//	@Tags		menu
//	@Produce	json
//	@Router		/v1/menu/{id}/image [get]
func (h *MenuHandlers) GetItemImage(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.catalogSvc.ImageURL(c.Request().Context(), id)
	if err != nil {
		log.Printf("menu image url failed: %v", err)
		return common.SendServerError(c, "Failed to resolve image")
	}
	if url == "" {
		return common.SendNotFoundError(c, "Image")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
