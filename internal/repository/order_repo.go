package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error)
	GetByPaymentIntentIDForUser(ctx context.Context, intentID string, userID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	MarkPaymentSucceeded(ctx context.Context, intentID string) (int64, error)
	MarkPaymentFailed(ctx context.Context, intentID string) (int64, error)

	WithTx(ctx context.Context, fn func(txOrders OrderRepo, txItems OrderItemRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		First(&ord, "payment_intent_id = ?", intentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByPaymentIntentIDForUser(ctx context.Context, intentID string, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		First(&ord, "payment_intent_id = ? AND user_id = ?", intentID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Items").Preload("Items.Product").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("status", status).Error
}

// MarkPaymentSucceeded — условный UPDATE: переводит заказ в RECEIVED/succeeded,
// если он ещё не в этом состоянии. 0 затронутых строк при существующем заказе
// означает идемпотентный повтор, не ошибку — различает вызывающий.
func (r *orderRepo) MarkPaymentSucceeded(ctx context.Context, intentID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_intent_id = ? AND NOT (status = ? AND payment_status = ?)",
			intentID, models.OrderStatusReceived, models.PaymentStatusSucceeded).
		Updates(map[string]any{
			"status":         models.OrderStatusReceived,
			"payment_status": models.PaymentStatusSucceeded,
		})
	return res.RowsAffected, res.Error
}

// MarkPaymentFailed срабатывает только по неразрешённой оплате
// (RECEIVED/pending): failed-вебхук после succeeded игнорируется
func (r *orderRepo) MarkPaymentFailed(ctx context.Context, intentID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_intent_id = ? AND status = ? AND payment_status = ?",
			intentID, models.OrderStatusReceived, models.PaymentStatusPending).
		Updates(map[string]any{
			"status":         models.OrderStatusFailed,
			"payment_status": models.PaymentStatusFailed,
		})
	return res.RowsAffected, res.Error
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(txOrders OrderRepo, txItems OrderItemRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &orderItemRepo{db: tx})
	})
}
