// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/users/auth/controller"
	rateLimiter "paperhub_backend/internals/middlewares"
)

// AuthRoutes mounts the public auth endpoints; protected ones are attached
// to the authenticated group by the route index.
func AuthRoutes(app *fiber.App, user fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/logout", authController.Logout)

	user.Post("/auth/change-password", authController.ChangePassword)
}
