package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/auth"
	"github.com/rinkdesk/backend/internal/handler"
	"github.com/rinkdesk/backend/internal/response"
)

// AuthMiddleware turns a bearer token into a Principal in the request
// context. Handlers read the principal rather than re-deriving role or area.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	logger *slog.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger.With("component", "auth_middleware"),
	}
}

func (m *AuthMiddleware) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return response.Unauthorized(c, "authentication required")
		}

		principal, err := m.tokens.Verify(tokenString)
		if err != nil {
			m.logger.Debug("token verification failed", "error", err)
			return response.Unauthorized(c, "invalid or expired token")
		}

		handler.SetPrincipalInContext(c, principal)

		return c.Next()
	}
}

// RequireAdmin must run after Require.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := handler.GetPrincipalFromContext(c)
		if principal == nil {
			return response.Unauthorized(c, "authentication required")
		}
		if !principal.IsAdmin() {
			return response.Forbidden(c, "admin role required")
		}
		return c.Next()
	}
}
