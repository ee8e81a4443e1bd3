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

func adminCtx() context.Context {
	ctx := service.WithUserID(context.Background(), uuid.New())
	return service.WithRole(ctx, service.RoleAdmin)
}

func TestAdminUpdateStatus_AllowsLegalTransition(t *testing.T) {
	orderID := uuid.New()
	current := models.OrderStatusReceived

	var updatedTo models.OrderStatus
	orders := &MockOrderRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: orderID, Status: current}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
			updatedTo = status
			current = status
			return nil
		},
	}

	svc := service.NewOrderService(orders, zap.NewNop())
	got, err := svc.AdminUpdateStatus(adminCtx(), orderID, models.OrderStatusShipped)
	if err != nil {
		t.Fatalf("AdminUpdateStatus: %v", err)
	}
	if updatedTo != models.OrderStatusShipped || got.Status != models.OrderStatusShipped {
		t.Fatalf("expected SHIPPED got %s / %s", updatedTo, got.Status)
	}
}

func TestAdminUpdateStatus_RejectsIllegalTransition(t *testing.T) {
	orders := &MockOrderRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: id, Status: models.OrderStatusDelivered}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
			t.Fatal("terminal order must not be updated")
			return nil
		},
	}

	svc := service.NewOrderService(orders, zap.NewNop())
	_, err := svc.AdminUpdateStatus(adminCtx(), uuid.New(), models.OrderStatusShipped)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}
}

func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	orders := &MockOrderRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: id, Status: models.OrderStatusShipped}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
			t.Fatal("no-op must not hit the database")
			return nil
		},
	}

	svc := service.NewOrderService(orders, zap.NewNop())
	got, err := svc.AdminUpdateStatus(adminCtx(), uuid.New(), models.OrderStatusShipped)
	if err != nil {
		t.Fatalf("AdminUpdateStatus: %v", err)
	}
	if got.Status != models.OrderStatusShipped {
		t.Fatalf("expected SHIPPED got %s", got.Status)
	}
}

func TestAdminUpdateStatus_RequiresAdminRole(t *testing.T) {
	svc := service.NewOrderService(&MockOrderRepo{}, zap.NewNop())

	ctx := service.WithUserID(context.Background(), uuid.New())
	ctx = service.WithRole(ctx, service.RoleCustomer)

	_, err := svc.AdminUpdateStatus(ctx, uuid.New(), models.OrderStatusShipped)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
}

func TestGetMine_ScopesToOwner(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()

	orders := &MockOrderRepo{
		GetByIDForUserFunc: func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
			if userID != owner {
				return nil, nil
			}
			return &models.Order{ID: orderID, UserID: owner}, nil
		},
	}
	svc := service.NewOrderService(orders, zap.NewNop())

	// владелец видит заказ
	if _, err := svc.GetMine(authedCtx(owner), orderID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	// чужой пользователь получает not found, не forbidden
	_, err := svc.GetMine(authedCtx(uuid.New()), orderID)
	if !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}
