package handler

import (
	"net/http"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler serves unauthenticated availability lookups. Reads go
// through the Redis stock cache, so a hot product never hits Postgres
// more than once per TTL window.
type StockHandler struct {
	products  service.ProductService
	inventory service.InventoryService
}

func NewStockHandler(products service.ProductService, inventory service.InventoryService) *StockHandler {
	return &StockHandler{products: products, inventory: inventory}
}

// Availability godoc
// @Summary Current available stock for a product
// @Tags public
// @Produce json
// @Param product_id path string true "Product UUID"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/public/stock/{product_id} [get]
func (h *StockHandler) Availability(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product_id"))
		return
	}

	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	available, err := h.inventory.AvailableStock(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StockResponse{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Unit:           product.Unit,
		AvailableStock: available,
	})
}
