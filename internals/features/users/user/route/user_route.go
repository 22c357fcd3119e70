package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/users/user/controller"
)

// UserRoutes mounts self-service routes on the authenticated group and
// account management on the admin group.
func UserRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	userController := controller.NewUserController(db)

	user.Get("/users/me", userController.Me)

	admin.Get("/users", userController.List)
	admin.Patch("/users/:id/active", userController.SetActive)
}
