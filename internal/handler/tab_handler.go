package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/pos"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

// TabHandler exposes the tab ledger operations
type TabHandler struct {
	sys *pos.System
}

func NewTabHandler(sys *pos.System) *TabHandler {
	return &TabHandler{sys: sys}
}

// OpenRequest is the body for opening a tab
type OpenRequest struct {
	Table        int    `json:"table"`
	CustomerName string `json:"customer_name"`
}

// ItemRequest is the body for adding or removing a line item
type ItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Open handles opening a new tab on a free table
func (h *TabHandler) Open(c echo.Context) error {
	log := logger.FromEcho(c)

	var req OpenRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tab, err := h.sys.OpenTab(req.Table, req.CustomerName)
	if err != nil {
		prometheus.RecordTabOperation("open", false)
		return errorResponse(c, err)
	}

	prometheus.RecordTabOperation("open", true)
	prometheus.OpenTabsGauge.Inc()
	log.Info("Tab opened", zap.Int("tab_id", tab.ID), zap.Int("table", tab.Table))
	return c.JSON(http.StatusCreated, tab)
}

// ListOpen handles listing all currently open tabs
func (h *TabHandler) ListOpen(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sys.OpenTabs())
}

// Get handles retrieving a single tab by ID
func (h *TabHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tab id"})
	}
	tab, err := h.sys.Tab(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tab)
}

// Total handles recomputing the amount owed on a tab
func (h *TabHandler) Total(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tab id"})
	}
	total, err := h.sys.Total(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tab_id": id, "total": total})
}

// AddItem handles putting units of a product on a tab
func (h *TabHandler) AddItem(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tab id"})
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.sys.AddItem(id, req.ProductID, req.Quantity); err != nil {
		prometheus.RecordTabOperation("add_item", false)
		return errorResponse(c, err)
	}

	prometheus.RecordTabOperation("add_item", true)
	tab, err := h.sys.Tab(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tab)
}

// RemoveItem handles taking units of a product off a tab. Quantities above
// what the tab holds are clamped, not rejected.
func (h *TabHandler) RemoveItem(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tab id"})
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.sys.RemoveItem(id, req.ProductID, req.Quantity); err != nil {
		prometheus.RecordTabOperation("remove_item", false)
		return errorResponse(c, err)
	}

	prometheus.RecordTabOperation("remove_item", true)
	tab, err := h.sys.Tab(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tab)
}

// Close handles freezing a tab and freeing its table
func (h *TabHandler) Close(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tab id"})
	}

	total, err := h.sys.CloseTab(id)
	if err != nil {
		prometheus.RecordTabOperation("close", false)
		return errorResponse(c, err)
	}

	prometheus.RecordTabOperation("close", true)
	prometheus.OpenTabsGauge.Dec()
	prometheus.RecordSale(total.InexactFloat64())
	log.Info("Tab closed", zap.Int("tab_id", id), zap.String("total", total.StringFixed(2)))
	return c.JSON(http.StatusOK, echo.Map{"tab_id": id, "total": total})
}
