package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart *service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// Get godoc
// @Summary Корзина текущего пользователя
// @Tags cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	summary, err := h.cart.Get(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(summary.Items, summary.TotalCents))
}

// SetItem godoc
// @Summary Выставить количество товара в корзине
// @Description quantity=0 удаляет позицию
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.SetCartItemRequest true "Позиция"
// @Success 200 {object} dto.CartItemResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/cart/items [put]
func (h *CartHandler) SetItem(c *gin.Context) {
	var req dto.SetCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	productID, err := uuid.Parse(req.ProductId)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product_id", nil))
		return
	}

	item, err := h.cart.SetItem(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if item == nil { // quantity=0, позиция удалена
		c.JSON(http.StatusOK, gin.H{"status": "removed"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCartItemResponse(item))
}

// RemoveItem godoc
// @Summary Убрать товар из корзины
// @Tags cart
// @Produce json
// @Param productId path string true "ID товара"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product id", nil))
		return
	}
	if err := h.cart.RemoveItem(c.Request.Context(), productID); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear godoc
// @Summary Очистить корзину
// @Tags cart
// @Produce json
// @Success 200 {object} dto.ClearCartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/cart/clear [post]
func (h *CartHandler) Clear(c *gin.Context) {
	deleted, err := h.cart.Clear(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClearCartResponse{Deleted: deleted})
}
