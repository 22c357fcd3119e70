package auth

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates moderation and reference-data mutation. Must run after
// AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden: administrator access required",
			})
		}
		return c.Next()
	}
}
