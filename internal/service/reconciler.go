package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// ReconcilerService приводит заказ к итогу платежа по событию Stripe.
// Повторная доставка того же события ничего не меняет: вся идемпотентность
// сидит в условных UPDATE в репозитории, блокировок на уровне приложения нет.
type ReconcilerService interface {
	ApplySucceeded(ctx context.Context, intentID string) (*models.Order, error)
	ApplyFailed(ctx context.Context, intentID string) (*models.Order, error)
}

type reconcilerService struct {
	orders repository.OrderRepo
	log    *zap.Logger
}

func NewReconcilerService(orders repository.OrderRepo, log *zap.Logger) ReconcilerService {
	return &reconcilerService{orders: orders, log: log}
}

func (s *reconcilerService) ApplySucceeded(ctx context.Context, intentID string) (*models.Order, error) {
	rows, err := s.orders.MarkPaymentSucceeded(ctx, intentID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		// событие пришло раньше, чем клиент успел создать заказ
		s.log.Warn("payment succeeded for unknown intent", zap.String("intent_id", intentID))
		return nil, ErrOrderNotFound
	}

	if rows == 0 {
		s.log.Info("payment success already applied", zap.String("intent_id", intentID))
	} else {
		s.log.Info("order marked as paid",
			zap.String("intent_id", intentID),
			zap.String("order_id", order.ID.String()))
	}
	return order, nil
}

func (s *reconcilerService) ApplyFailed(ctx context.Context, intentID string) (*models.Order, error) {
	rows, err := s.orders.MarkPaymentFailed(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// либо заказа нет, либо он уже разрешён (оплачен или провален) —
		// в обоих случаях событие неприменимо
		s.log.Warn("payment failure did not match any pending order", zap.String("intent_id", intentID))
		return nil, ErrOrderNotFound
	}

	order, err := s.orders.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	s.log.Info("order marked as failed",
		zap.String("intent_id", intentID),
		zap.String("order_id", order.ID.String()))
	return order, nil
}
