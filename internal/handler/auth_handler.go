package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/auth"
	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/password"
	"github.com/rinkdesk/backend/internal/response"
)

type AuthHandler struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

func NewAuthHandler(userRepo domain.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With("handler", "auth"),
	}
}

// Register mounts the login route. rateLimit guards against credential
// stuffing and is applied only here.
func (h *AuthHandler) Register(app *fiber.App, rateLimit fiber.Handler) {
	v1 := app.Group(APIPrefix)
	v1.Post("/auth/login", rateLimit, h.Login)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	user, err := h.userRepo.FindByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Unauthorized(c, MsgInvalidCredentials)
		}
		h.logger.Error("Failed to look up user", "error", err)
		return response.InternalError(c)
	}

	if err := password.Verify(user.PasswordHash, req.Password); err != nil {
		return response.Unauthorized(c, MsgInvalidCredentials)
	}

	token, err := h.tokens.Issue(domain.Principal{Role: user.Role, AreaID: user.AreaID})
	if err != nil {
		h.logger.Error("Failed to issue token", "error", err)
		return response.InternalError(c)
	}

	return response.OK(c, LoginResponse{Token: token})
}
