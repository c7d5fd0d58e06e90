package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/handlersyss/BarSystem/internal/model"
	"github.com/handlersyss/BarSystem/internal/pos"
)

// ReportHandler serves the end-of-day reporting endpoints. Reports only
// read snapshots of the catalog and ledger.
type ReportHandler struct {
	sys               *pos.System
	lowStockThreshold int
}

func NewReportHandler(sys *pos.System, lowStockThreshold int) *ReportHandler {
	return &ReportHandler{sys: sys, lowStockThreshold: lowStockThreshold}
}

// LowStock lists products whose stock fell below the threshold; the
// configured default can be overridden with ?threshold=N.
func (h *ReportHandler) LowStock(c echo.Context) error {
	threshold := h.lowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid threshold"})
		}
		threshold = v
	}
	return c.JSON(http.StatusOK, echo.Map{
		"threshold": threshold,
		"products":  h.sys.LowStock(threshold),
	})
}

// TabsOfDay lists the tabs opened on a day (?date=DD/MM/YYYY, default today)
func (h *ReportHandler) TabsOfDay(c echo.Context) error {
	day, err := reportDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected DD/MM/YYYY"})
	}
	return c.JSON(http.StatusOK, h.sys.TabsOfDay(day))
}

// SalesOfDay summarizes the tabs closed on a day (?date=DD/MM/YYYY, default today)
func (h *ReportHandler) SalesOfDay(c echo.Context) error {
	day, err := reportDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected DD/MM/YYYY"})
	}
	return c.JSON(http.StatusOK, h.sys.SalesOfDay(day))
}

func reportDay(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(model.DateLayout, raw)
}
