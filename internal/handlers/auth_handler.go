package handlers

import (
	"net/http"
	"time"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя с ролью CUSTOMER и отправляет код подтверждения почты
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 409 {object} dto.ConflictErrorResponse "Пользователь уже существует"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserId: u.ID.String(),
		Email:  u.Email,
		Role:   string(u.Role),
	})
}

// Login godoc
// @Summary Авторизация пользователя
// @Description Выдаёт access-токен и ставит его в куку auth-token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Неверные учётные данные"
// @Failure 403 {object} dto.ForbiddenErrorResponse "Email не подтверждён"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, res.AccessToken, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		UserId:      res.User.ID.String(),
		Name:        res.User.Name,
		Email:       res.User.Email,
		Role:        string(res.User.Role),
		AccessToken: res.AccessToken,
		ExpiresIn:   int64(time.Until(res.ExpiresAt).Seconds()),
	})
}

// Logout godoc
// @Summary Выход
// @Description Сбрасывает куку auth-token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.Me(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		UserId:          u.ID.String(),
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
	})
}

// RequestEmailVerification godoc
// @Summary Запрос кода подтверждения почты
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestEmailVerificationRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Email уже подтверждён"
// @Failure 429 {object} dto.RateLimitedErrorResponse
// @Router /api/v1/auth/verify-email/request [post]
func (h *AuthHandler) RequestEmailVerification(c *gin.Context) {
	var req dto.RequestEmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	if err := h.auth.RequestEmailVerification(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "code sent"})
}

// ConfirmEmailVerification godoc
// @Summary Подтверждение почты по коду
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmEmailVerificationRequest true "Код"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный или истёкший код"
// @Router /api/v1/auth/verify-email/confirm [post]
func (h *AuthHandler) ConfirmEmailVerification(c *gin.Context) {
	var req dto.ConfirmEmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	if err := h.auth.ConfirmEmailVerification(c.Request.Context(), req.Code); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "email verified"})
}

// RequestPasswordReset godoc
// @Summary Запрос кода сброса пароля
// @Description Отвечает 200 и для незарегистрированного email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 429 {object} dto.RateLimitedErrorResponse
// @Router /api/v1/auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "if the email exists, a code was sent"})
}

// ConfirmPasswordReset godoc
// @Summary Сброс пароля по коду
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPasswordResetRequest true "Код и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный или истёкший код"
// @Router /api/v1/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req.Code, req.NewPassword); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}
