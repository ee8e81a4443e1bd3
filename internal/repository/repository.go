package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	DB             *gorm.DB
	Users          UserRepo
	Verifications  EmailVerificationRepo
	PasswordResets PasswordResetRepo
	Categories     CategoryRepo
	Products       ProductRepo
	Cart           CartRepo
	Orders         OrderRepo
	OrderItems     OrderItemRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:             db,
		Users:          NewUserRepo(db),
		Verifications:  NewEmailVerificationRepo(db),
		PasswordResets: NewPasswordResetRepo(db),
		Categories:     NewCategoryRepo(db),
		Products:       NewProductRepo(db),
		Cart:           NewCartRepo(db),
		Orders:         NewOrderRepo(db),
		OrderItems:     NewOrderItemRepo(db),
	}
}

// IsUniqueViolation распознаёт нарушение UNIQUE-ограничения: и через
// трансляцию gorm, и по коду Postgres 23505 напрямую
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
