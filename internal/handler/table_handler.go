package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/pos"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

// TableHandler exposes the table registry operations
type TableHandler struct {
	sys *pos.System
}

func NewTableHandler(sys *pos.System) *TableHandler {
	return &TableHandler{sys: sys}
}

// List handles listing tables split into free and occupied
func (h *TableHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"free":     h.sys.FreeTables(),
		"occupied": h.sys.OccupiedTables(),
	})
}

// Create handles registering a new table
func (h *TableHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		ID int `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.sys.AddTable(req.ID); err != nil {
		prometheus.RecordTableOperation("create", false)
		return errorResponse(c, err)
	}
	prometheus.RecordTableOperation("create", true)
	log.Info("Table added", zap.Int("table", req.ID))
	return c.JSON(http.StatusCreated, echo.Map{"id": req.ID})
}

// Delete handles removing a free table
func (h *TableHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	if err := h.sys.RemoveTable(id); err != nil {
		prometheus.RecordTableOperation("delete", false)
		return errorResponse(c, err)
	}
	prometheus.RecordTableOperation("delete", true)
	log.Info("Table removed", zap.Int("table", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "table removed"})
}

// Tab handles retrieving the open tab bound to a table
func (h *TableHandler) Tab(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	tab, err := h.sys.TabForTable(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tab)
}
