package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/feedback/controller"
)

// FeedbackRoutes mounts the contact form publicly and its management on the
// admin group.
func FeedbackRoutes(public fiber.Router, admin fiber.Router, db *gorm.DB) {
	feedbackController := controller.NewFeedbackController(db)

	public.Post("/feedback", feedbackController.Create)

	admin.Get("/feedback", feedbackController.List)
	admin.Patch("/feedback/:id/status", feedbackController.SetStatus)
}
