package handlers

import (
	"io"
	"net/http"
	"time"

	"storefront/internal/dto"
	"storefront/internal/payments"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const webhookEventTTL = 24 * time.Hour

type WebhookHandler struct {
	reconciler    service.ReconcilerService
	webhookSecret string
	cache         service.CacheClient // может быть nil — дедуп событий выключен
	log           *zap.Logger
}

func NewWebhookHandler(reconciler service.ReconcilerService, webhookSecret string, cache service.CacheClient, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler:    reconciler,
		webhookSecret: webhookSecret,
		cache:         cache,
		log:           log,
	}
}

// HandleStripe godoc
// @Summary Вебхук Stripe
// @Description Принимает события платежей; подпись обязательна, повторная доставка события безопасна
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ValidationErrorResponse "Неверная подпись или тело"
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ по интенту не найден"
// @Router /api/v1/webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cannot read body", nil))
		return
	}

	event, err := payments.VerifyEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.log.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid signature", nil))
		return
	}

	// дедуп в redis срезает только повторную работу; корректность повторной
	// доставки держат условные UPDATE в БД
	marked := false
	if h.cache != nil && event.ID != "" {
		fresh, err := h.cache.MarkWebhookEvent(c.Request.Context(), event.ID, webhookEventTTL)
		if err != nil {
			h.log.Warn("webhook dedup check failed", zap.Error(err))
		} else if !fresh {
			h.log.Info("duplicate webhook event skipped", zap.String("event_id", event.ID))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		} else {
			marked = true
		}
	}

	switch event.Type {
	case payments.EventPaymentSucceeded:
		if _, err := h.reconciler.ApplySucceeded(c.Request.Context(), event.IntentID); err != nil {
			h.releaseEventMark(c, event.ID, marked)
			writeServiceError(c, h.log, err)
			return
		}
	case payments.EventPaymentFailed:
		if _, err := h.reconciler.ApplyFailed(c.Request.Context(), event.IntentID); err != nil {
			h.releaseEventMark(c, event.ID, marked)
			writeServiceError(c, h.log, err)
			return
		}
	default:
		// незнакомые события подтверждаем, иначе Stripe будет ретраить вечно
		h.log.Info("ignoring webhook event", zap.String("type", event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// releaseEventMark снимает отметку дедупа при ошибке обработки: Stripe
// ретраит событие с тем же id, и ретрай обязан дойти до реконсилятора,
// в частности когда вебхук пришёл раньше создания заказа.
func (h *WebhookHandler) releaseEventMark(c *gin.Context, eventID string, marked bool) {
	if h.cache == nil || !marked {
		return
	}
	if err := h.cache.ClearWebhookEvent(c.Request.Context(), eventID); err != nil {
		h.log.Warn("failed to clear webhook event mark", zap.String("event_id", eventID), zap.Error(err))
	}
}
