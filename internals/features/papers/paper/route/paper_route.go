// file: internals/features/papers/paper/route/paper_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "paperhub_backend/internals/features/papers/paper/controller"
	"paperhub_backend/internals/helpers/storage"
	rateLimiter "paperhub_backend/internals/middlewares"
)

// PaperRoutes mounts the catalog on three groups: public browsing,
// authenticated upload/management, and admin moderation.
func PaperRoutes(public fiber.Router, user fiber.Router, admin fiber.Router, db *gorm.DB, store storage.ObjectStorage) {
	paperController := controller.NewPaperController(db, store)
	logController := controller.NewUploadLogController(db)

	public.Get("/papers", paperController.List)
	public.Get("/papers/:id", paperController.Get)
	public.Get("/papers/:id/download", paperController.Download)

	user.Post("/papers", rateLimiter.UploadRateLimiter(), paperController.Upload)
	user.Get("/papers/mine", paperController.MyUploads)
	// authenticated detail view: uploaders and admins can see papers still
	// awaiting moderation
	user.Get("/papers/:id", paperController.Get)
	user.Delete("/papers/:id", paperController.Delete)

	admin.Get("/papers/pending", paperController.Pending)
	admin.Post("/papers/:id/approve", paperController.Approve)
	admin.Post("/papers/:id/reject", paperController.Reject)
	admin.Get("/upload-logs", logController.List)
}
