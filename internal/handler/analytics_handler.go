package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/response"
	"github.com/rinkdesk/backend/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger.With("handler", "analytics"),
	}
}

func (h *AnalyticsHandler) Register(app *fiber.App, requireAuth, requireAdmin fiber.Handler) {
	v1 := app.Group(APIPrefix)

	analytics := v1.Group("/analytics", requireAuth, requireAdmin)
	analytics.Get("/kpis", h.GetKPIs)
	analytics.Get("/weekly", h.GetWeeklySales)
	analytics.Get("/transactions", h.GetTransactions)
}

func (h *AnalyticsHandler) GetKPIs(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	kpis, err := h.analytics.KPIs(c.Context(), principal.AreaID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, kpis)
}

func (h *AnalyticsHandler) GetWeeklySales(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	ref := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(DateFormat, raw)
		if err != nil {
			return response.BadRequest(c, MsgInvalidDateFormat)
		}
		ref = parsed
	}

	sales, err := h.analytics.WeeklySales(c.Context(), principal.AreaID, ref)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, fiber.Map{"weeklySales": sales})
}

func (h *AnalyticsHandler) GetTransactions(c *fiber.Ctx) error {
	principal := GetPrincipalFromContext(c)
	if principal == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var start, end *time.Time
	rawStart, rawEnd := c.Query("startDate"), c.Query("endDate")
	if rawStart != "" && rawEnd != "" {
		parsedStart, err := time.Parse(DateFormat, rawStart)
		if err != nil {
			return response.BadRequest(c, MsgInvalidDateFormat)
		}
		parsedEnd, err := time.Parse(DateFormat, rawEnd)
		if err != nil {
			return response.BadRequest(c, MsgInvalidDateFormat)
		}
		start, end = &parsedStart, &parsedEnd
	}

	transactions, err := h.analytics.Transactions(c.Context(), principal.AreaID, start, end)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, fiber.Map{"recentTransactions": transactions})
}
