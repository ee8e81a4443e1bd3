package service

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/producer"
	"storefront/internal/repository"
	"storefront/internal/util"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

const (
	verificationCodeLen = 10
	resetCodeLen        = 6
	verificationTTL     = 24 * time.Hour
	resetTTL            = 1 * time.Hour
	codeCooldown        = time.Minute
)

type AuthService struct {
	users             repository.UserRepo
	emailVerification repository.EmailVerificationRepo
	passwordReset     repository.PasswordResetRepo
	hasher            PasswordHasher
	tokens            TokenProvider
	emails            EmailProducer // может быть nil — коды уходят только в лог
	cache             CacheClient   // может быть nil — кулдаун считаем по БД

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAuthService(
	users repository.UserRepo,
	emailVerification repository.EmailVerificationRepo,
	passwordReset repository.PasswordResetRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	emails EmailProducer,
	cache CacheClient,
	accessTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:             users,
		emailVerification: emailVerification,
		passwordReset:     passwordReset,
		hasher:            hasher,
		tokens:            tokens,
		emails:            emails,
		cache:             cache,

		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:            name,
		Email:           email,
		Password:        hash,
		Role:            models.RoleCustomer,
		IsEmailVerified: false,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if err := s.issueVerificationCode(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return LoginResult{}, ErrEmailNotVerified
	}

	access, exp, err := s.tokens.SignAccess(user.ID, user.Email, string(user.Role), s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user, AccessToken: access, ExpiresAt: exp}, nil
}

func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) RequestEmailVerification(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.IsEmailVerified {
		return ErrEmailAlreadyVerified
	}

	if err := s.checkCooldown(ctx, "verify:"+u.ID.String()); err != nil {
		return err
	}
	latest, err := s.emailVerification.FindLatestByUser(ctx, u.ID)
	if err == nil && latest != nil {
		if s.now().Sub(latest.CreatedAt) < codeCooldown {
			return ErrTooManyRequests
		}
	}

	return s.issueVerificationCode(ctx, u)
}

func (s *AuthService) ConfirmEmailVerification(ctx context.Context, code string) error {
	codeHash := util.Sha256Base64URL(code)

	emailVer, err := s.emailVerification.GetValidByHash(ctx, codeHash, s.now())
	if err != nil {
		return ErrInvalidOrExpiredCode
	}

	user, err := s.users.GetByID(ctx, emailVer.UserID)
	if err != nil || user == nil {
		return ErrUserNotFound
	}

	user.IsEmailVerified = true
	if err := s.users.UpdateIsEmailVerified(ctx, user); err != nil {
		return err
	}

	if _, err := s.emailVerification.Consume(ctx, emailVer.ID); err != nil {
		s.log.Info("Failed to consume email verification code", zap.Error(err))
	}

	return nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		// не раскрываем наружу, есть ли такой пользователь
		return nil
	}

	if err := s.checkCooldown(ctx, "reset:"+u.ID.String()); err != nil {
		return err
	}
	latest, err := s.passwordReset.FindLatestByUser(ctx, u.ID)
	if err == nil && latest != nil {
		if s.now().Sub(latest.CreatedAt) < codeCooldown {
			return ErrTooManyRequests
		}
	}

	rng, err := nanorand.Gen(resetCodeLen)
	if err != nil {
		return err
	}
	codeHash := util.Sha256Base64URL(rng)

	reset := &models.PasswordResetToken{
		UserID:    u.ID,
		Email:     u.Email,
		CodeHash:  codeHash,
		ExpiresAt: s.now().Add(resetTTL),
		Consumed:  false,
	}
	if err := s.passwordReset.Create(ctx, reset); err != nil {
		return err
	}

	s.sendCodeEmail(ctx, u, "reset_password", "Reset Your Password", rng)
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	codeHash := util.Sha256Base64URL(code)

	reset, err := s.passwordReset.GetValidByHash(ctx, codeHash, s.now())
	if err != nil {
		return ErrInvalidOrExpiredCode
	}

	user, err := s.users.GetByID(ctx, reset.UserID)
	if err != nil || user == nil {
		return ErrUserNotFound
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = newHash
	if err := s.users.UpdatePassword(ctx, user); err != nil {
		return err
	}

	if _, err := s.passwordReset.Consume(ctx, reset.ID); err != nil {
		s.log.Info("Failed to consume password reset code", zap.Error(err))
	}
	if _, err := s.passwordReset.DeleteAllForUser(ctx, user.ID); err != nil {
		s.log.Info("Failed to delete password reset codes", zap.Error(err))
	}

	return nil
}

func (s *AuthService) issueVerificationCode(ctx context.Context, u *models.User) error {
	rng, err := nanorand.Gen(verificationCodeLen)
	if err != nil {
		return err
	}
	codeHash := util.Sha256Base64URL(rng)

	emailVer := &models.EmailVerification{
		UserID:    u.ID,
		Email:     u.Email,
		CodeHash:  codeHash,
		ExpiresAt: s.now().Add(verificationTTL),
		Consumed:  false,
	}
	if err := s.emailVerification.Create(ctx, emailVer); err != nil {
		return err
	}

	s.sendCodeEmail(ctx, u, "verify_email", "Verify Your Email", rng)
	return nil
}

// redis-кулдаун срезает повторные запросы до похода в БД; при выключенном
// redis остаётся проверка по CreatedAt последнего кода
func (s *AuthService) checkCooldown(ctx context.Context, key string) error {
	if s.cache == nil {
		return nil
	}
	limited, err := s.cache.CheckRateLimit(ctx, key)
	if err != nil {
		s.log.Warn("rate limit check failed", zap.Error(err))
		return nil
	}
	if limited {
		return ErrTooManyRequests
	}
	if err := s.cache.SetRateLimit(ctx, key, codeCooldown); err != nil {
		s.log.Warn("rate limit set failed", zap.Error(err))
	}
	return nil
}

func (s *AuthService) sendCodeEmail(ctx context.Context, u *models.User, template, subject, code string) {
	if s.emails == nil {
		s.log.Info("Код отправки почты", zap.String("code", code))
		return
	}
	err := s.emails.SendEmail(ctx, u.ID.String(), producer.EmailMessage{
		To:       u.Email,
		Subject:  subject,
		Template: template,
		Data: map[string]any{
			"name": u.Name,
			"code": code,
		},
	})
	if err != nil {
		s.log.Error("failed to send code email",
			zap.String("template", template), zap.Error(err))
	}
}
