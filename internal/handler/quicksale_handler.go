package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/pos"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

// QuickSaleHandler finalizes ad-hoc sales not bound to any table
type QuickSaleHandler struct {
	sys *pos.System
}

func NewQuickSaleHandler(sys *pos.System) *QuickSaleHandler {
	return &QuickSaleHandler{sys: sys}
}

// QuickSaleRequest carries the whole draft in one request; the draft lives
// with the caller, never in the service.
type QuickSaleRequest struct {
	CustomerName string        `json:"customer_name"`
	Items        []ItemRequest `json:"items"`
}

// Create assembles a draft from the request and finalizes it as an
// already-closed tab.
func (h *QuickSaleHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req QuickSaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	draft := pos.NewDraft(req.CustomerName)
	for _, item := range req.Items {
		if err := h.sys.DraftAdd(draft, item.ProductID, item.Quantity); err != nil {
			prometheus.RecordTabOperation("quick_sale", false)
			return errorResponse(c, err)
		}
	}

	tab, err := h.sys.FinalizeQuickSale(draft)
	if err != nil {
		prometheus.RecordTabOperation("quick_sale", false)
		return errorResponse(c, err)
	}

	prometheus.RecordTabOperation("quick_sale", true)
	prometheus.RecordSale(tab.Total().InexactFloat64())
	log.Info("Quick sale finalized",
		zap.Int("tab_id", tab.ID),
		zap.String("total", tab.Total().StringFixed(2)))
	return c.JSON(http.StatusCreated, tab)
}
