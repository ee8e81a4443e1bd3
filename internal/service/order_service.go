package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService struct {
	orders repository.OrderRepo
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepo, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, log: log}
}

// ListMine возвращает заказы текущего пользователя, новые первыми
func (s *OrderService) ListMine(ctx context.Context, limit, offset int) ([]*models.Order, int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.orders.List(ctx, repository.OrderListFilter{
		UserID: &userID,
		Limit:  normalizeLimit(limit),
		Offset: max(offset, 0),
	})
}

// GetMine отдаёт заказ только его владельцу; для админа скоуп не срезается
func (s *OrderService) GetMine(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	if role == RoleAdmin {
		order, err = s.orders.GetByID(ctx, id)
	} else {
		order, err = s.orders.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetMineByIntent нужен странице "спасибо за заказ": фронт после редиректа
// Stripe знает только intent id
func (s *OrderService) GetMineByIntent(ctx context.Context, intentID string) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	if role == RoleAdmin {
		order, err = s.orders.GetByPaymentIntentID(ctx, intentID)
	} else {
		order, err = s.orders.GetByPaymentIntentIDForUser(ctx, intentID, userID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) AdminList(ctx context.Context, status *models.OrderStatus, limit, offset int) ([]*models.Order, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	if status != nil && !ValidOrderStatus(*status) {
		return nil, 0, ErrInvalidInput
	}
	return s.orders.List(ctx, repository.OrderListFilter{
		Status: status,
		Limit:  normalizeLimit(limit),
		Offset: max(offset, 0),
	})
}

// AdminUpdateStatus переводит заказ по машине статусов; произвольные
// переходы (в том числе из терминальных) отклоняются
func (s *OrderService) AdminUpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !ValidOrderStatus(to) {
		return nil, ErrInvalidInput
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == to {
		return order, nil
	}
	if !CanTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	s.log.Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)))

	return s.orders.GetByID(ctx, id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
