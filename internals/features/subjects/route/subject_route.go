package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/subjects/controller"
)

// SubjectRoutes mounts the taxonomy: public read, admin write.
func SubjectRoutes(public fiber.Router, admin fiber.Router, db *gorm.DB) {
	subjectController := controller.NewSubjectController(db)

	public.Get("/subjects", subjectController.List)

	admin.Post("/subjects", subjectController.Create)
	admin.Patch("/subjects/:id", subjectController.Patch)
	admin.Delete("/subjects/:id", subjectController.Delete)
}
