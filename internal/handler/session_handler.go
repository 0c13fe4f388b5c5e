package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/response"
	"github.com/rinkdesk/backend/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With("handler", "session"),
	}
}

func (h *SessionHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	v1 := app.Group(APIPrefix)

	sessions := v1.Group("/sessions", requireAuth)
	sessions.Post("/", h.CreateSession)
	sessions.Get("/active", h.ListActive)
	sessions.Put("/:id", h.EditSession)
	sessions.Delete("/permanent/:id", h.DeleteSessionPermanently)
	sessions.Delete("/:id", h.CompleteSession)
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req service.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	session, err := h.sessions.Create(c.Context(), principal.AreaID, req)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.Created(c, session)
}

func (h *SessionHandler) ListActive(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	sessions, err := h.sessions.ListActive(c.Context(), principal.AreaID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, sessions)
}

func (h *SessionHandler) EditSession(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req service.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	session, err := h.sessions.Edit(c.Context(), c.Params("id"), principal.AreaID, req)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, session)
}

// CompleteSession is the soft delete: the session leaves the active list but
// stays in analytics history.
func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.sessions.Complete(c.Context(), c.Params("id"), principal.AreaID); err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, fiber.Map{"message": "session marked as completed"})
}

func (h *SessionHandler) DeleteSessionPermanently(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.sessions.DeletePermanently(c.Context(), c.Params("id"), principal.AreaID); err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, fiber.Map{"message": "session permanently deleted"})
}
