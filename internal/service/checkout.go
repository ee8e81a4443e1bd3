package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/payments"

	"github.com/google/uuid"
)

type CheckoutItem struct {
	ProductID  uuid.UUID
	Quantity   uint32
	PriceCents int64
}

type CreateOrderInput struct {
	Items           []CheckoutItem
	ShippingAddress models.ShippingAddress
	PaymentIntentID *string
	PaymentStatus   *string // pending|succeeded; по умолчанию succeeded при наличии интента
}

type CreateIntentResult struct {
	Intent      payments.Intent
	AmountCents int64
	Currency    string
}

// CheckoutService превращает подтверждённую корзину в ровно один заказ,
// связанный с одним payment intent
type CheckoutService interface {
	CreateIntent(ctx context.Context, currency string) (CreateIntentResult, error)
	CreateOrUseOrder(ctx context.Context, in CreateOrderInput) (ord *models.Order, created bool, err error)
	Finalize(ctx context.Context) (int64, error)
}
