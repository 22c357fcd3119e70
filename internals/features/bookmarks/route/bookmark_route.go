package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/bookmarks/controller"
)

// BookmarkRoutes mounts bookmark management on the authenticated group.
func BookmarkRoutes(user fiber.Router, db *gorm.DB) {
	bookmarkController := controller.NewBookmarkController(db)

	user.Get("/bookmarks", bookmarkController.List)
	user.Post("/bookmarks", bookmarkController.Create)
	user.Delete("/bookmarks/:paper_id", bookmarkController.Delete)
}
