// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "paperhub_backend/internals/features/users/auth/route"
	bookmarkRoute "paperhub_backend/internals/features/bookmarks/route"
	feedbackRoute "paperhub_backend/internals/features/feedback/route"
	paperRoute "paperhub_backend/internals/features/papers/paper/route"
	subjectRoute "paperhub_backend/internals/features/subjects/route"
	userRoute "paperhub_backend/internals/features/users/user/route"
	"paperhub_backend/internals/helpers/storage"
	rateLimiter "paperhub_backend/internals/middlewares"
	authMiddleware "paperhub_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.ObjectStorage) {
	startTime = time.Now()

	app.Use(rateLimiter.GlobalRateLimiter())

	// ===================== GROUPS =====================

	// PUBLIC: no auth, browse/download approved papers, taxonomy, contact
	public := app.Group("/api/public")

	// PRIVATE (USER): any authenticated, active account
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN: moderation and management
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.AdminOnly(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(app, user, db)

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(user, admin, db)

	log.Println("[INFO] Mounting Paper routes...")
	paperRoute.PaperRoutes(public, user, admin, db, store)

	log.Println("[INFO] Mounting Bookmark routes...")
	bookmarkRoute.BookmarkRoutes(user, db)

	log.Println("[INFO] Mounting Subject routes...")
	subjectRoute.SubjectRoutes(public, admin, db)

	log.Println("[INFO] Mounting Feedback routes...")
	feedbackRoute.FeedbackRoutes(public, admin, db)
}
