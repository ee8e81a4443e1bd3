package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailVerificationRepo interface {
	Create(ctx context.Context, v *models.EmailVerification) error
	GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.EmailVerification, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.EmailVerification, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type emailVerificationRepo struct{ db *gorm.DB }

func NewEmailVerificationRepo(db *gorm.DB) EmailVerificationRepo {
	return &emailVerificationRepo{db: db}
}

func (r *emailVerificationRepo) Create(ctx context.Context, v *models.EmailVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *emailVerificationRepo) GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.EmailVerification, error) {
	var v models.EmailVerification
	err := r.db.WithContext(ctx).
		Where("code_hash = ? AND consumed = false AND expires_at > ?", codeHash, now).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *emailVerificationRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.EmailVerification{}).
		Where("id = ? AND consumed = false", id).Update("consumed", true)
	return res.RowsAffected > 0, res.Error
}

func (r *emailVerificationRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.EmailVerification, error) {
	var v models.EmailVerification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at DESC").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *emailVerificationRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.EmailVerification{})
	return res.RowsAffected, res.Error
}

type PasswordResetRepo interface {
	Create(ctx context.Context, t *models.PasswordResetToken) error
	GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.PasswordResetToken, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type passwordResetRepo struct{ db *gorm.DB }

func NewPasswordResetRepo(db *gorm.DB) PasswordResetRepo { return &passwordResetRepo{db: db} }

func (r *passwordResetRepo) Create(ctx context.Context, t *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *passwordResetRepo) GetValidByHash(ctx context.Context, codeHash string, now time.Time) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("code_hash = ? AND consumed = false AND expires_at > ?", codeHash, now).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *passwordResetRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.PasswordResetToken{}).
		Where("id = ? AND consumed = false", id).Update("consumed", true)
	return res.RowsAffected > 0, res.Error
}

func (r *passwordResetRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *passwordResetRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
