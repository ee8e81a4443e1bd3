package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

// CreateIntent godoc
// @Summary Создание платёжного интента
// @Description Сумма берётся из корзины на сервере, клиентская сумма не принимается
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest false "Валюта (по умолчанию INR)"
// @Success 200 {object} dto.CreateIntentResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Пустая корзина"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/checkout/payment-intent [post]
func (h *CheckoutHandler) CreateIntent(c *gin.Context) {
	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		writeBindError(c, h.log, err)
		return
	}

	res, err := h.checkout.CreateIntent(c.Request.Context(), req.Currency)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateIntentResponse{
		ClientSecret: res.Intent.ClientSecret,
		AmountCents:  res.AmountCents,
		Currency:     res.Currency,
	})
}

// CreateOrder godoc
// @Summary Создание заказа
// @Description Идемпотентно по payment_intent_id: повтор с тем же интентом возвращает уже созданный заказ
// @Tags checkout
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Заказ"
// @Success 200 {object} dto.OrderResponse "Заказ уже существовал"
// @Success 201 {object} dto.OrderResponse "Заказ создан"
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Router /api/v1/orders [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductId)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product_id", nil))
			return
		}
		items = append(items, service.CheckoutItem{
			ProductID:  pid,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}

	order, created, err := h.checkout.CreateOrUseOrder(c.Request.Context(), service.CreateOrderInput{
		Items: items,
		ShippingAddress: models.ShippingAddress{
			FullName:     req.ShippingAddress.FullName,
			AddressLine1: req.ShippingAddress.AddressLine1,
			AddressLine2: req.ShippingAddress.AddressLine2,
			City:         req.ShippingAddress.City,
			State:        req.ShippingAddress.State,
			PostalCode:   req.ShippingAddress.PostalCode,
			Phone:        req.ShippingAddress.Phone,
		},
		PaymentIntentID: req.PaymentIntentId,
		PaymentStatus:   req.PaymentStatus,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		// корзина чистится только после успешного создания
		if _, err := h.checkout.Finalize(c.Request.Context()); err != nil {
			h.log.Warn("failed to clear cart after order", zap.Error(err))
		}
	}
	c.JSON(status, dto.ToOrderResponse(order))
}
