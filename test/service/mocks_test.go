package service_test

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/payments"
	"storefront/internal/producer"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисного слоя

// MockUserRepo
type MockUserRepo struct {
	CreateFunc                func(ctx context.Context, u *models.User) error
	GetByEmailFunc            func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailFunc         func(ctx context.Context, email string) (bool, error)
	UpdatePasswordFunc        func(ctx context.Context, user *models.User) error
	UpdateIsEmailVerifiedFunc func(ctx context.Context, user *models.User) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, user *models.User) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepo) UpdateIsEmailVerified(ctx context.Context, user *models.User) error {
	if m.UpdateIsEmailVerifiedFunc != nil {
		return m.UpdateIsEmailVerifiedFunc(ctx, user)
	}
	return nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc                      func(ctx context.Context, o *models.Order) error
	GetByIDFunc                     func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUserFunc              func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetByPaymentIntentIDFunc        func(ctx context.Context, intentID string) (*models.Order, error)
	GetByPaymentIntentIDForUserFunc func(ctx context.Context, intentID string, userID uuid.UUID) (*models.Order, error)
	ListFunc                        func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	UpdateStatusFunc                func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	MarkPaymentSucceededFunc        func(ctx context.Context, intentID string) (int64, error)
	MarkPaymentFailedFunc           func(ctx context.Context, intentID string) (int64, error)
	WithTxFunc                      func(ctx context.Context, fn func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo) error) error

	Items *MockOrderItemRepo // транзакционный напарник для WithTx по умолчанию
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	if m.GetByPaymentIntentIDFunc != nil {
		return m.GetByPaymentIntentIDFunc(ctx, intentID)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByPaymentIntentIDForUser(ctx context.Context, intentID string, userID uuid.UUID) (*models.Order, error) {
	if m.GetByPaymentIntentIDForUserFunc != nil {
		return m.GetByPaymentIntentIDForUserFunc(ctx, intentID, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) MarkPaymentSucceeded(ctx context.Context, intentID string) (int64, error) {
	if m.MarkPaymentSucceededFunc != nil {
		return m.MarkPaymentSucceededFunc(ctx, intentID)
	}
	return 0, nil
}

func (m *MockOrderRepo) MarkPaymentFailed(ctx context.Context, intentID string) (int64, error) {
	if m.MarkPaymentFailedFunc != nil {
		return m.MarkPaymentFailedFunc(ctx, intentID)
	}
	return 0, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	items := m.Items
	if items == nil {
		items = &MockOrderItemRepo{}
	}
	return fn(m, items)
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	BulkCreateFunc   func(ctx context.Context, items []models.OrderItem) error
	GetByOrderIDFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	SumByOrderFunc   func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

// MockCartRepo
type MockCartRepo struct {
	ListByUserFunc          func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	GetByUserProductFunc    func(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	CreateFunc              func(ctx context.Context, item *models.CartItem) error
	UpdateQuantityFunc      func(ctx context.Context, id uuid.UUID, quantity uint32, itemTotalCents int64) error
	DeleteByUserProductFunc func(ctx context.Context, userID, productID uuid.UUID) error
	DeleteAllForUserFunc    func(ctx context.Context, userID uuid.UUID) (int64, error)
	SumByUserFunc           func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetByUserProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if m.GetByUserProductFunc != nil {
		return m.GetByUserProductFunc(ctx, userID, productID)
	}
	return nil, nil
}

func (m *MockCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockCartRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity uint32, itemTotalCents int64) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, quantity, itemTotalCents)
	}
	return nil
}

func (m *MockCartRepo) DeleteByUserProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if m.DeleteByUserProductFunc != nil {
		return m.DeleteByUserProductFunc(ctx, userID, productID)
	}
	return nil
}

func (m *MockCartRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockCartRepo) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.SumByUserFunc != nil {
		return m.SumByUserFunc(ctx, userID)
	}
	return 0, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc   func(ctx context.Context, p *models.Product) error
	GetByIDFunc  func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc     func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateFunc   func(ctx context.Context, p *models.Product) error
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
	ExistAllFunc func(ctx context.Context, ids []uuid.UUID) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) Update(ctx context.Context, p *models.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepo) ExistAll(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if m.ExistAllFunc != nil {
		return m.ExistAllFunc(ctx, ids)
	}
	return true, nil
}

// MockEmailVerificationRepo
type MockEmailVerificationRepo struct {
	CreateFunc           func(ctx context.Context, v *models.EmailVerification) error
	GetValidByHashFunc   func(ctx context.Context, codeHash string, now time.Time) (*models.EmailVerification, error)
	ConsumeFunc          func(ctx context.Context, id uuid.UUID) (bool, error)
	FindLatestByUserFunc func(ctx context.Context, userID uuid.UUID) (*models.EmailVerification, error)
	DeleteAllForUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockEmailVerificationRepo) Create(ctx context.Context, v *models.EmailVerification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockEmailVerificationRepo) GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.EmailVerification, error) {
	if m.GetValidByHashFunc != nil {
		return m.GetValidByHashFunc(ctx, codeHash, now)
	}
	return nil, nil
}

func (m *MockEmailVerificationRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id)
	}
	return true, nil
}

func (m *MockEmailVerificationRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.EmailVerification, error) {
	if m.FindLatestByUserFunc != nil {
		return m.FindLatestByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEmailVerificationRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return 0, nil
}

// MockPasswordResetRepo
type MockPasswordResetRepo struct {
	CreateFunc           func(ctx context.Context, t *models.PasswordResetToken) error
	GetValidByHashFunc   func(ctx context.Context, codeHash string, now time.Time) (*models.PasswordResetToken, error)
	ConsumeFunc          func(ctx context.Context, id uuid.UUID) (bool, error)
	FindLatestByUserFunc func(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error)
	DeleteAllForUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockPasswordResetRepo) Create(ctx context.Context, t *models.PasswordResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockPasswordResetRepo) GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.PasswordResetToken, error) {
	if m.GetValidByHashFunc != nil {
		return m.GetValidByHashFunc(ctx, codeHash, now)
	}
	return nil, nil
}

func (m *MockPasswordResetRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id)
	}
	return true, nil
}

func (m *MockPasswordResetRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error) {
	if m.FindLatestByUserFunc != nil {
		return m.FindLatestByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockPasswordResetRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return 0, nil
}

// MockIntentGateway
type MockIntentGateway struct {
	CreateIntentFunc func(ctx context.Context, amountCents int64, currency string, meta map[string]string) (payments.Intent, error)
}

func (m *MockIntentGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, meta map[string]string) (payments.Intent, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, amountCents, currency, meta)
	}
	return payments.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
}

// MockEmailProducer
type MockEmailProducer struct {
	SendEmailFunc func(ctx context.Context, key string, msg producer.EmailMessage) error
	Sent          []producer.EmailMessage
}

func (m *MockEmailProducer) SendEmail(ctx context.Context, key string, msg producer.EmailMessage) error {
	m.Sent = append(m.Sent, msg)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, key, msg)
	}
	return nil
}

// MockHasher
type MockHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed:"+password
}

// MockTokenProvider
type MockTokenProvider struct {
	SignAccessFunc func(sub uuid.UUID, email, role string, ttl time.Duration) (string, time.Time, error)
}

func (m *MockTokenProvider) SignAccess(sub uuid.UUID, email, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(sub, email, role, ttl)
	}
	return "token", time.Now().Add(ttl), nil
}
