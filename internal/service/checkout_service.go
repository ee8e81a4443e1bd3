package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/payments"
	"storefront/internal/producer"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const currencyINR = "INR"

type checkoutService struct {
	repo    *repository.Repository
	gateway payments.IntentGateway
	emails  EmailProducer // может быть nil — письма выключены
	now     func() time.Time
	log     *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, gateway payments.IntentGateway, emails EmailProducer, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:    repo,
		gateway: gateway,
		emails:  emails,
		now:     time.Now,
		log:     log,
	}
}

// CreateIntent пересчитывает сумму корзины на сервере — клиентской сумме не
// верим, иначе цену можно подменить на фронте
func (s *checkoutService) CreateIntent(ctx context.Context, currency string) (CreateIntentResult, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return CreateIntentResult{}, err
	}

	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		return CreateIntentResult{}, err
	}
	if user == nil {
		return CreateIntentResult{}, ErrUserNotFound
	}

	if currency == "" {
		currency = currencyINR
	}

	total, err := s.repo.Cart.SumByUser(ctx, userID)
	if err != nil {
		return CreateIntentResult{}, err
	}
	if total <= 0 {
		return CreateIntentResult{}, ErrInvalidAmount
	}

	intent, err := s.gateway.CreateIntent(ctx, total, strings.ToLower(currency), map[string]string{
		"user_id":    user.ID.String(),
		"user_email": user.Email,
	})
	if err != nil {
		return CreateIntentResult{}, err
	}

	return CreateIntentResult{
		Intent:      intent,
		AmountCents: total,
		Currency:    strings.ToUpper(currency),
	}, nil
}

// CreateOrUseOrder — идемпотентное создание заказа. Для уже использованного
// интента возвращается существующий заказ; гонка двух одновременных созданий
// разрешается уникальным индексом по payment_intent_id, проигравший получает
// заказ победителя, а не ошибку.
func (s *checkoutService) CreateOrUseOrder(ctx context.Context, in CreateOrderInput) (*models.Order, bool, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, false, err
	}

	if in.PaymentIntentID != nil && *in.PaymentIntentID != "" {
		existing, err := s.repo.Orders.GetByPaymentIntentID(ctx, *in.PaymentIntentID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			s.log.Info("order already exists for payment intent",
				zap.String("intent_id", *in.PaymentIntentID),
				zap.String("order_id", existing.ID.String()))
			return existing, false, nil
		}
	}

	if err := validateCreateOrder(in); err != nil {
		return nil, false, err
	}

	ids := make([]uuid.UUID, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	allExist, err := s.repo.Products.ExistAll(ctx, ids)
	if err != nil {
		return nil, false, err
	}
	if !allExist {
		return nil, false, ErrProductNotFound
	}

	now := s.now()
	var (
		itemsDB []models.OrderItem
		total   int64
	)
	for _, it := range in.Items {
		line := int64(it.Quantity) * it.PriceCents
		total += line
		itemsDB = append(itemsDB, models.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.PriceCents,
			ItemTotalCents: line,
			CurrencyCode:   currencyINR,
			CreatedAt:      now,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusReceived,
		PaymentIntentID: in.PaymentIntentID,
		PaymentStatus:   resolvePaymentStatus(in),
		TotalCents:      total,
		CurrencyCode:    currencyINR,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Заказ и позиции — одна транзакция: заказ без позиций не должен быть
	// наблюдаем ни при каком падении
	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		if err := or.Create(ctx, order); err != nil {
			return err
		}
		for i := range itemsDB {
			itemsDB[i].OrderID = order.ID
		}
		if err := ir.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}
		full, err := or.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = full
		return nil
	})
	if err != nil {
		// проигравший гонку за интент забирает строку победителя
		if repository.IsUniqueViolation(err) && in.PaymentIntentID != nil {
			existing, lookupErr := s.repo.Orders.GetByPaymentIntentID(ctx, *in.PaymentIntentID)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			if existing != nil {
				s.log.Info("lost order-create race, returning existing order",
					zap.String("intent_id", *in.PaymentIntentID),
					zap.String("order_id", existing.ID.String()))
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	s.sendConfirmationEmail(ctx, order)

	return order, true, nil
}

// Finalize чистит корзину; вызывается только после того, как и заказ создан,
// и оплата подтверждена — при любой более ранней ошибке корзина остаётся
func (s *checkoutService) Finalize(ctx context.Context) (int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.Cart.DeleteAllForUser(ctx, userID)
}

func validateCreateOrder(in CreateOrderInput) error {
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Quantity == 0 {
			return ErrQuantityInvalid
		}
		if it.PriceCents < 0 {
			return ErrInvalidAmount
		}
	}
	if strings.TrimSpace(in.ShippingAddress.FullName) == "" ||
		strings.TrimSpace(in.ShippingAddress.AddressLine1) == "" {
		return ErrInvalidAddress
	}
	if in.PaymentStatus != nil {
		switch *in.PaymentStatus {
		case models.PaymentStatusPending, models.PaymentStatusSucceeded:
		default:
			return ErrInvalidInput
		}
	}
	return nil
}

func resolvePaymentStatus(in CreateOrderInput) *string {
	if in.PaymentStatus != nil {
		return in.PaymentStatus
	}
	if in.PaymentIntentID != nil && *in.PaymentIntentID != "" {
		st := models.PaymentStatusSucceeded
		return &st
	}
	return nil
}

// письмо-подтверждение — best effort: падение отправки логируется и
// не валит чекаут
func (s *checkoutService) sendConfirmationEmail(ctx context.Context, order *models.Order) {
	if s.emails == nil {
		return
	}
	user, err := s.repo.Users.GetByID(ctx, order.UserID)
	if err != nil || user == nil {
		s.log.Warn("confirmation email skipped: user lookup failed",
			zap.String("order_id", order.ID.String()), zap.Error(err))
		return
	}

	items := make([]map[string]any, 0, len(order.Items))
	for _, it := range order.Items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		items = append(items, map[string]any{
			"name":        name,
			"quantity":    it.Quantity,
			"item_total":  formatRupees(it.ItemTotalCents),
		})
	}

	err = s.emails.SendEmail(ctx, order.ID.String(), producer.EmailMessage{
		To:       user.Email,
		Subject:  "Your Order Confirmation",
		Template: "order_confirmation",
		Data: map[string]any{
			"name":        user.Name,
			"order_id":    order.ID.String(),
			"total":       formatRupees(order.TotalCents),
			"address":     order.ShippingAddress,
			"items":       items,
		},
	})
	if err != nil {
		s.log.Error("failed to send order confirmation email",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func formatRupees(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
