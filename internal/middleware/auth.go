package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/dto"
	"storefront/internal/service"
	"storefront/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthCookieName — имя куки с access-токеном; Bearer-заголовок имеет приоритет
const AuthCookieName = "auth-token"

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxEmail    = "user_email"
)

// AuthRequired валидирует access-токен (Bearer или кука) и кладёт
// пользователя и в gin-контекст, и в request context для сервисного слоя
func AuthRequired(tokens *token.HSProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing token"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(raw)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		c.Set(CtxUserID, claims.UserID.String())
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxEmail, claims.Email)

		ctx := service.WithUserID(c.Request.Context(), claims.UserID)
		ctx = service.WithEmail(ctx, claims.Email)
		ctx = service.WithRole(ctx, service.Role(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminRequired ставится после AuthRequired
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CtxUserRole)
		if role != string(service.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("admin role required"))
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if authz := c.GetHeader("Authorization"); authz != "" {
		if t, ok := ExtractBearerToken(authz); ok && t != "" {
			return t
		}
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	t = strings.Trim(t, " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	return t, true
}
