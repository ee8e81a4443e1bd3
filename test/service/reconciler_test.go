package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestApplySucceeded_FirstDelivery(t *testing.T) {
	intent := "pi_ok"
	paid := models.PaymentStatusSucceeded
	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusReceived, PaymentIntentID: &intent, PaymentStatus: &paid}

	orders := &MockOrderRepo{
		MarkPaymentSucceededFunc: func(ctx context.Context, intentID string) (int64, error) {
			if intentID != intent {
				t.Fatalf("unexpected intent %s", intentID)
			}
			return 1, nil
		},
		GetByPaymentIntentIDFunc: func(ctx context.Context, intentID string) (*models.Order, error) {
			return order, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	got, err := rec.ApplySucceeded(context.Background(), intent)
	if err != nil {
		t.Fatalf("ApplySucceeded: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s got %s", order.ID, got.ID)
	}
}

func TestApplySucceeded_ReplayIsNoop(t *testing.T) {
	intent := "pi_replay"
	paid := models.PaymentStatusSucceeded
	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusReceived, PaymentIntentID: &intent, PaymentStatus: &paid}

	marks := 0
	orders := &MockOrderRepo{
		MarkPaymentSucceededFunc: func(ctx context.Context, intentID string) (int64, error) {
			marks++
			if marks == 1 {
				return 1, nil
			}
			// повторная доставка: условный UPDATE не находит строк
			return 0, nil
		},
		GetByPaymentIntentIDFunc: func(ctx context.Context, intentID string) (*models.Order, error) {
			return order, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	first, err := rec.ApplySucceeded(context.Background(), intent)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	second, err := rec.ApplySucceeded(context.Background(), intent)
	if err != nil {
		t.Fatalf("replay must succeed, got %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("replay must return the same order")
	}
}

func TestApplySucceeded_UnknownIntent(t *testing.T) {
	orders := &MockOrderRepo{
		MarkPaymentSucceededFunc: func(ctx context.Context, intentID string) (int64, error) {
			return 0, nil
		},
		GetByPaymentIntentIDFunc: func(ctx context.Context, intentID string) (*models.Order, error) {
			return nil, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	_, err := rec.ApplySucceeded(context.Background(), "pi_ghost")
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}

func TestApplyFailed_MatchesOnlyPendingOrders(t *testing.T) {
	intent := "pi_fail"
	failed := models.PaymentStatusFailed
	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusFailed, PaymentIntentID: &intent, PaymentStatus: &failed}

	orders := &MockOrderRepo{
		MarkPaymentFailedFunc: func(ctx context.Context, intentID string) (int64, error) {
			return 1, nil
		},
		GetByPaymentIntentIDFunc: func(ctx context.Context, intentID string) (*models.Order, error) {
			return order, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	got, err := rec.ApplyFailed(context.Background(), intent)
	if err != nil {
		t.Fatalf("ApplyFailed: %v", err)
	}
	if got.Status != models.OrderStatusFailed {
		t.Fatalf("status expected FAILED got %s", got.Status)
	}
}

func TestApplyFailed_AfterSuccessIsRejected(t *testing.T) {
	// заказ уже оплачен: поздний failure не должен его трогать
	orders := &MockOrderRepo{
		MarkPaymentFailedFunc: func(ctx context.Context, intentID string) (int64, error) {
			return 0, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	_, err := rec.ApplyFailed(context.Background(), "pi_late")
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}

func TestApplyFailed_UnknownIntent(t *testing.T) {
	orders := &MockOrderRepo{
		MarkPaymentFailedFunc: func(ctx context.Context, intentID string) (int64, error) {
			return 0, nil
		},
	}

	rec := service.NewReconcilerService(orders, zap.NewNop())
	_, err := rec.ApplyFailed(context.Background(), "pi_none")
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}
