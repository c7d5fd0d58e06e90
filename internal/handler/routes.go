package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/handlersyss/BarSystem/internal/auth"
	"github.com/handlersyss/BarSystem/internal/pos"
)

// RegisterRoutes wires the API surface onto an Echo instance. The guard
// middleware (JWT auth in production, none in tests) protects everything
// except health and login/register.
func RegisterRoutes(e *echo.Echo, sys *pos.System, authSvc *auth.Service, lowStockThreshold int, guard ...echo.MiddlewareFunc) {
	products := NewProductHandler(sys)
	tabs := NewTabHandler(sys)
	tables := NewTableHandler(sys)
	quickSales := NewQuickSaleHandler(sys)
	reports := NewReportHandler(sys, lowStockThreshold)

	e.GET("/health", Health)

	if authSvc != nil {
		operators := NewAuthHandler(authSvc)
		e.POST("/api/auth/register", operators.Register)
		e.POST("/api/auth/login", operators.Login)
	}

	productAPI := e.Group("/api/products", guard...)
	productAPI.GET("", products.List)
	productAPI.GET("/:id", products.Get)
	productAPI.POST("", products.Create)
	productAPI.PUT("/:id", products.Update)
	productAPI.PUT("/:id/stock", products.SetStock)
	productAPI.DELETE("/:id", products.Delete)

	tabAPI := e.Group("/api/tabs", guard...)
	tabAPI.GET("", tabs.ListOpen)
	tabAPI.POST("", tabs.Open)
	tabAPI.GET("/:id", tabs.Get)
	tabAPI.GET("/:id/total", tabs.Total)
	tabAPI.POST("/:id/items", tabs.AddItem)
	tabAPI.DELETE("/:id/items", tabs.RemoveItem)
	tabAPI.POST("/:id/close", tabs.Close)

	tableAPI := e.Group("/api/tables", guard...)
	tableAPI.GET("", tables.List)
	tableAPI.POST("", tables.Create)
	tableAPI.DELETE("/:id", tables.Delete)
	tableAPI.GET("/:id/tab", tables.Tab)

	saleAPI := e.Group("/api/quick-sales", guard...)
	saleAPI.POST("", quickSales.Create)

	reportAPI := e.Group("/api/reports", guard...)
	reportAPI.GET("/low-stock", reports.LowStock)
	reportAPI.GET("/tabs-of-day", reports.TabsOfDay)
	reportAPI.GET("/sales-of-day", reports.SalesOfDay)
}
