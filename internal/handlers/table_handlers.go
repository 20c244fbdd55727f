package handlers

import (
	"log"
	"net/http"

	"dinepos/internal/models"
	"dinepos/internal/services"

	"github.com/labstack/echo/v4"
)

// TableHandlers handles table registry HTTP requests
type TableHandlers struct {
	tableSvc services.TableService
}

// NewTableHandlers creates a new table handlers instance
func NewTableHandlers(tableSvc services.TableService) *TableHandlers {
	return &TableHandlers{tableSvc: tableSvc}
}

// ListTables returns all seatable tables ordered by id. Read failures
// degrade to an empty list.
//
//	@Summary	List tables
//	@Tags		tables
//	@Produce	json
//	@Router		/v1/tables [get]
func (h *TableHandlers) ListTables(c echo.Context) error {
	tables, err := h.tableSvc.ListTables(c.Request().Context())
	if err != nil {
		log.Printf("table list failed: %v", err)
		return c.JSON(http.StatusOK, []*models.Table{})
	}
	if tables == nil {
		tables = []*models.Table{}
	}
	return c.JSON(http.StatusOK, tables)
}
