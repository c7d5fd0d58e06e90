package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/pos"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}

// ProductUpdateRequest defines a partial product update; absent fields are
// left unchanged
type ProductUpdateRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	Stock    *int             `json:"stock"`
}

// ProductHandler exposes the catalog operations
type ProductHandler struct {
	sys *pos.System
}

func NewProductHandler(sys *pos.System) *ProductHandler {
	return &ProductHandler{sys: sys}
}

// List handles retrieving the catalog with optional category filtering
func (h *ProductHandler) List(c echo.Context) error {
	products := h.sys.Products(c.QueryParam("category"))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.sys.Product(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles adding a new product to the catalog
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, err := h.sys.AddProduct(req.Name, req.Price, req.Category, req.Stock)
	if err != nil {
		prometheus.RecordProductOperation("create", false)
		return errorResponse(c, err)
	}

	prometheus.RecordProductOperation("create", true)
	prometheus.UpdateProductInventory(product.ID, product.Name, product.Category, product.Stock)
	log.Info("Product created",
		zap.Int("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a partial edit of an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	err = h.sys.EditProduct(id, pos.ProductUpdate{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
	})
	if err != nil {
		prometheus.RecordProductOperation("update", false)
		return errorResponse(c, err)
	}

	product, err := h.sys.Product(id)
	if err != nil {
		return errorResponse(c, err)
	}
	prometheus.RecordProductOperation("update", true)
	prometheus.UpdateProductInventory(product.ID, product.Name, product.Category, product.Stock)
	return c.JSON(http.StatusOK, product)
}

// SetStock handles overwriting a product's stock count
func (h *ProductHandler) SetStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.sys.SetStock(id, req.Stock); err != nil {
		prometheus.RecordProductOperation("set_stock", false)
		return errorResponse(c, err)
	}
	prometheus.RecordProductOperation("set_stock", true)
	product, err := h.sys.Product(id)
	if err != nil {
		return errorResponse(c, err)
	}
	prometheus.UpdateProductInventory(product.ID, product.Name, product.Category, product.Stock)
	return c.JSON(http.StatusOK, product)
}

// Delete handles removing a product from the catalog
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.sys.RemoveProduct(id); err != nil {
		prometheus.RecordProductOperation("delete", false)
		return errorResponse(c, err)
	}
	prometheus.RecordProductOperation("delete", true)
	log.Info("Product deleted", zap.Int("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// pathID parses an integer path parameter
func pathID(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
