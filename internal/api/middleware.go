package api

import (
	"strings"

	"github.com/cyralabs/cyra/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired authenticates the request from the auth cookie or a bearer
// token and stores the resolved user in the request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw := c.Cookies(authCookieName)
	if raw == "" {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := handler.parseToken(raw)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.auth.FindByID(userID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
