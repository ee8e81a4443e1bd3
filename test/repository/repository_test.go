package repository_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/migrate"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/testutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStorefrontDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo *repository.Repository, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test", Email: email, Password: "x", Role: models.RoleCustomer}
	if err := repo.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func timeInFuture() time.Time { return time.Now().Add(time.Hour) }

func TestOrderRepo_PaymentIntentUniqueness(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "unique@example.com")
	intent := "pi_unique"

	first := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intent}
	if err := repo.Orders.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intent}
	err := repo.Orders.Create(ctx, second)
	if err == nil {
		t.Fatal("second order with same intent must violate unique index")
	}
	if !repository.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// частичный индекс: NULL-интенты не конфликтуют между собой
	for i := 0; i < 2; i++ {
		if err := repo.Orders.Create(ctx, &models.Order{UserID: u.ID, Status: models.OrderStatusReceived}); err != nil {
			t.Fatalf("nil-intent order %d: %v", i, err)
		}
	}
}

func TestOrderRepo_MarkPaymentSucceeded_Idempotent(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "succ@example.com")
	intent := "pi_succ"
	pending := models.PaymentStatusPending

	ord := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intent, PaymentStatus: &pending}
	if err := repo.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.Orders.MarkPaymentSucceeded(ctx, intent)
	if err != nil || rows != 1 {
		t.Fatalf("first apply: rows=%d err=%v", rows, err)
	}

	// повтор ничего не меняет
	rows, err = repo.Orders.MarkPaymentSucceeded(ctx, intent)
	if err != nil || rows != 0 {
		t.Fatalf("replay: rows=%d err=%v", rows, err)
	}

	got, _ := repo.Orders.GetByPaymentIntentID(ctx, intent)
	if got.Status != models.OrderStatusReceived || got.PaymentStatus == nil || *got.PaymentStatus != models.PaymentStatusSucceeded {
		t.Fatalf("state mismatch: %+v", got)
	}
}

func TestOrderRepo_MarkPaymentFailed_OnlyPending(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "fail@example.com")
	pending := models.PaymentStatusPending

	intentPending := "pi_pending"
	ordPending := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intentPending, PaymentStatus: &pending}
	if err := repo.Orders.Create(ctx, ordPending); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	intentPaid := "pi_paid"
	paid := models.PaymentStatusSucceeded
	ordPaid := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intentPaid, PaymentStatus: &paid}
	if err := repo.Orders.Create(ctx, ordPaid); err != nil {
		t.Fatalf("create paid: %v", err)
	}

	// pending переходит в FAILED
	rows, err := repo.Orders.MarkPaymentFailed(ctx, intentPending)
	if err != nil || rows != 1 {
		t.Fatalf("fail pending: rows=%d err=%v", rows, err)
	}
	got, _ := repo.Orders.GetByPaymentIntentID(ctx, intentPending)
	if got.Status != models.OrderStatusFailed || *got.PaymentStatus != models.PaymentStatusFailed {
		t.Fatalf("pending order state: %+v", got)
	}

	// уже оплаченный заказ поздний failure не трогает
	rows, err = repo.Orders.MarkPaymentFailed(ctx, intentPaid)
	if err != nil || rows != 0 {
		t.Fatalf("fail paid: rows=%d err=%v", rows, err)
	}
	got, _ = repo.Orders.GetByPaymentIntentID(ctx, intentPaid)
	if got.Status != models.OrderStatusReceived || *got.PaymentStatus != models.PaymentStatusSucceeded {
		t.Fatalf("paid order must be untouched: %+v", got)
	}
}

func TestOrderRepo_WithTx_RollsBackOrderAndItems(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "tx@example.com")

	cat := &models.Category{Name: "Electronics"}
	if err := repo.Categories.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	prod := &models.Product{Name: "Headphones", PriceCents: 299900, CurrencyCode: "INR", CategoryID: cat.ID}
	if err := repo.Products.Create(ctx, prod); err != nil {
		t.Fatalf("create product: %v", err)
	}

	intent := "pi_tx"
	err := repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo) error {
		ord := &models.Order{UserID: u.ID, Status: models.OrderStatusReceived, PaymentIntentID: &intent}
		if err := txOrders.Create(ctx, ord); err != nil {
			return err
		}
		if err := txItems.BulkCreate(ctx, []models.OrderItem{
			{OrderID: ord.ID, ProductID: prod.ID, Quantity: 1, UnitPriceCents: 299900, ItemTotalCents: 299900, CurrencyCode: "INR"},
		}); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction // форсируем откат
	})
	if err == nil {
		t.Fatal("expected error from tx")
	}

	got, err := repo.Orders.GetByPaymentIntentID(ctx, intent)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != nil {
		t.Fatal("rolled back order must not be visible")
	}
}

func TestCartRepo_SumAndClear(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "cart@example.com")
	cat := &models.Category{Name: "Books"}
	if err := repo.Categories.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	for i, price := range []int64{10000, 25000} {
		prod := &models.Product{Name: "Book", PriceCents: price, CurrencyCode: "INR", CategoryID: cat.ID}
		if err := repo.Products.Create(ctx, prod); err != nil {
			t.Fatalf("create product %d: %v", i, err)
		}
		item := &models.CartItem{
			UserID: u.ID, ProductID: prod.ID, Quantity: 2,
			UnitPriceCents: price, ItemTotalCents: 2 * price, CurrencyCode: "INR",
		}
		if err := repo.Cart.Create(ctx, item); err != nil {
			t.Fatalf("create cart item %d: %v", i, err)
		}
	}

	total, err := repo.Cart.SumByUser(ctx, u.ID)
	if err != nil || total != 70000 {
		t.Fatalf("sum expected 70000 got %d err=%v", total, err)
	}

	deleted, err := repo.Cart.DeleteAllForUser(ctx, u.ID)
	if err != nil || deleted != 2 {
		t.Fatalf("clear expected 2 got %d err=%v", deleted, err)
	}

	total, _ = repo.Cart.SumByUser(ctx, u.ID)
	if total != 0 {
		t.Fatalf("sum after clear expected 0 got %d", total)
	}
}

func TestUserRepo_EmailLookupIsCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	createUser(t, repo, "Mixed@Example.com")

	got, err := repo.Users.GetByEmail(ctx, "mixed@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("lookup must ignore case")
	}
}

func TestPasswordResetRepo_ConsumeIsSingleUse(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u := createUser(t, repo, "reset@example.com")

	tok := &models.PasswordResetToken{UserID: u.ID, Email: u.Email, CodeHash: "hash123", ExpiresAt: timeInFuture()}
	if err := repo.PasswordResets.Create(ctx, tok); err != nil {
		t.Fatalf("create token: %v", err)
	}

	ok, err := repo.PasswordResets.Consume(ctx, tok.ID)
	if err != nil || !ok {
		t.Fatalf("first consume: ok=%v err=%v", ok, err)
	}
	ok, err = repo.PasswordResets.Consume(ctx, tok.ID)
	if err != nil || ok {
		t.Fatalf("second consume must be a no-op: ok=%v err=%v", ok, err)
	}
}
