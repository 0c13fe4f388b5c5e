package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/response"
)

func HandleDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, MsgInvalidCredentials)
	case errors.Is(err, domain.ErrAlreadyExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	default:
		return response.InternalError(c)
	}
}

const principalContextKey = "principal"

func SetPrincipalInContext(c *fiber.Ctx, p *domain.Principal) {
	c.Locals(principalContextKey, p)
}

func GetPrincipalFromContext(c *fiber.Ctx) *domain.Principal {
	p, ok := c.Locals(principalContextKey).(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}
