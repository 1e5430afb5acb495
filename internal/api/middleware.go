package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hersaheli/saheli/internal/models"
)

const contextUserKey = "current_user"

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
