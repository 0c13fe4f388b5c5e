package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/response"
)

type NotificationHandler struct {
	subRepo domain.SubscriptionRepository
	logger  *slog.Logger
}

func NewNotificationHandler(subRepo domain.SubscriptionRepository, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		subRepo: subRepo,
		logger:  logger.With("handler", "notification"),
	}
}

func (h *NotificationHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	v1 := app.Group(APIPrefix)
	v1.Post("/notifications/subscribe", requireAuth, h.Subscribe)
}

// SubscribeRequest mirrors the browser PushSubscription JSON shape.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// Subscribe stores a push destination scoped to the caller's area.
// Re-subscribing an existing endpoint is a success, not a duplicate.
func (h *NotificationHandler) Subscribe(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return response.BadRequest(c, "endpoint and keys are required")
	}

	err := h.subRepo.Upsert(c.Context(), domain.Subscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
		AreaID:   principal.AreaID,
	})
	if err != nil {
		h.logger.Error("Failed to save subscription", "error", err)
		return response.InternalError(c)
	}

	return response.Created(c, fiber.Map{"message": "subscription saved"})
}
