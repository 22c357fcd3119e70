package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"paperhub_backend/internals/constants"
	dto "paperhub_backend/internals/features/papers/paper/dto"
	model "paperhub_backend/internals/features/papers/paper/model"
	"paperhub_backend/internals/features/papers/paper/service"
	helper "paperhub_backend/internals/helpers"
	"paperhub_backend/internals/helpers/storage"
)

const maxUploadSize = 20 * 1024 * 1024

/* =========================
   Controller
   ========================= */

type PaperController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   storage.ObjectStorage
}

func NewPaperController(db *gorm.DB, store storage.ObjectStorage) *PaperController {
	return &PaperController{
		DB:        db,
		Validator: validator.New(),
		Storage:   store,
	}
}

/* =========================
   Small helpers
   ========================= */

func (ctl *PaperController) getID(c *fiber.Ctx) (uint, error) {
	param := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

func isAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals("is_admin").(bool)
	return v
}

/*
=========================================================

	LIST (public)
	GET /api/public/papers
	Query: subject, year, semester, q, page, per_page
	=========================================================
*/
func (ctl *PaperController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	q := dto.ParseListPapersQuery(c)

	tx := ctl.DB.Model(&model.PaperModel{}).
		Where("is_active = ? AND is_approved = ?", true, true)

	if q.Subject != "" {
		tx = tx.Where("subject = ?", q.Subject)
	}
	if q.Year != 0 {
		tx = tx.Where("year = ?", q.Year)
	}
	if q.Semester != "" {
		tx = tx.Where("semester = ?", q.Semester)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR course LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaperModel
	if err := tx.Order("upload_date DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

/*
=========================================================

	DETAIL (public for approved; uploader/admin otherwise)
	GET /api/public/papers/:id
	=========================================================
*/
func (ctl *PaperController) Get(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var paper model.PaperModel
	if err := ctl.DB.First(&paper, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !paper.IsApproved {
		uid, ok := currentUserID(c)
		if !ok || (uid != paper.UploadedBy && !isAdmin(c)) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
	}

	return helper.JsonOK(c, "ok", dto.FromModel(&paper))
}

/*
=========================================================

	DOWNLOAD
	GET /api/public/papers/:id/download
	Bumps the counter, then replies with the resolved URL.
	=========================================================
*/
func (ctl *PaperController) Download(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paper, err := service.IncrementDownloadCount(ctl.DB, id)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	url, ok := paper.DownloadURL()
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No download URL available for this paper")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"download_url":   url,
		"download_count": paper.DownloadCount,
	})
}

/*
=========================================================

	UPLOAD
	POST /api/u/papers  (multipart: file + metadata fields)
	Stores the bytes with the media host, then commits the paper row and
	its audit entry together. Storage failures are logged as failed
	upload_logs rows and reported generically.
	=========================================================
*/
func (ctl *PaperController) Upload(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UploadPaperRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > maxUploadSize {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 20 MB limit")
	}
	if !constants.IsAllowedFormat(fileHeader.Filename) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported file format")
	}

	store := ctl.Storage
	if store == nil {
		s, err := storage.Default()
		if err != nil {
			log.Printf("[ERROR] storage unavailable: %v", err)
			return helper.JsonError(c, fiber.StatusBadGateway, "File storage is currently unavailable")
		}
		store = s
	}

	file, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer file.Close()

	ref, err := store.Upload(c.UserContext(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("[ERROR] upload to storage failed: %v", err)
		if logErr := service.LogFailedUpload(ctl.DB, userID, "", err); logErr != nil {
			log.Printf("[ERROR] failed to write upload log: %v", logErr)
		}
		return helper.JsonError(c, fiber.StatusBadGateway, "File storage is currently unavailable")
	}

	paper := req.ToModel(userID)
	paper.CloudinaryPublicID = ref.PublicID
	paper.CloudinaryURL = ref.URL
	paper.CloudinaryResourceType = ref.ResourceType
	paper.FileFormat = ref.Format
	if paper.FileFormat == "" {
		paper.FileFormat = constants.FileFormat(fileHeader.Filename)
	}
	size := ref.Bytes
	paper.FileSize = &size

	if err := service.CreateUploaded(ctl.DB, paper); err != nil {
		// roll the stored object back so no orphan bytes remain
		if delErr := store.Delete(c.UserContext(), ref.PublicID, ref.ResourceType); delErr != nil {
			log.Printf("[ERROR] orphan cleanup failed for %s: %v", ref.PublicID, delErr)
		}
		if logErr := service.LogFailedUpload(ctl.DB, userID, ref.PublicID, err); logErr != nil {
			log.Printf("[ERROR] failed to write upload log: %v", logErr)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Paper uploaded, awaiting approval", dto.FromModel(paper))
}

/*
=========================================================

	MY UPLOADS
	GET /api/u/papers/mine
	=========================================================
*/
func (ctl *PaperController) MyUploads(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.PaperModel{}).
		Where("uploaded_by = ? AND is_active = ?", userID, true)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaperModel
	if err := tx.Order("upload_date DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

/*
=========================================================

	PENDING (admin)
	GET /api/a/papers/pending
	=========================================================
*/
func (ctl *PaperController) Pending(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	// never moderated: not approved and no moderating admin recorded
	tx := ctl.DB.Model(&model.PaperModel{}).
		Where("is_active = ? AND is_approved = ? AND approved_by IS NULL", true, false)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PaperModel
	if err := tx.Order("upload_date ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

/*
=========================================================

	APPROVE (admin)
	POST /api/a/papers/:id/approve
	=========================================================
*/
func (ctl *PaperController) Approve(c *fiber.Ctx) error {
	adminID, ok := currentUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paper, err := service.Approve(ctl.DB, id, adminID)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Paper approved", dto.FromModel(paper))
}

/*
=========================================================

	REJECT (admin)
	POST /api/a/papers/:id/reject
	Body: { "reason": "..." }
	=========================================================
*/
func (ctl *PaperController) Reject(c *fiber.Ctx) error {
	adminID, ok := currentUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.RejectPaperRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "A rejection reason is required")
	}

	paper, err := service.Reject(ctl.DB, id, adminID, req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Paper rejected", dto.FromModel(paper))
}

/*
=========================================================

	DELETE (soft; uploader or admin)
	DELETE /api/u/papers/:id
	=========================================================
*/
func (ctl *PaperController) Delete(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var paper model.PaperModel
	if err := ctl.DB.First(&paper, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if paper.UploadedBy != actorID && !isAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only delete your own uploads")
	}

	// best-effort destroy; the soft delete commits regardless
	var destroyErr error
	if paper.CloudinaryPublicID != "" {
		store := ctl.Storage
		if store == nil {
			if s, err := storage.Default(); err == nil {
				store = s
			} else {
				destroyErr = err
			}
		}
		if store != nil {
			destroyErr = store.Delete(c.UserContext(), paper.CloudinaryPublicID, paper.CloudinaryResourceType)
		}
		if destroyErr != nil {
			log.Printf("[WARN] storage destroy failed for %s: %v", paper.CloudinaryPublicID, destroyErr)
		}
	}

	deleted, err := service.SoftDelete(ctl.DB, id, actorID, destroyErr)
	if err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Paper deleted", fiber.Map{
		"id": deleted.ID,
	})
}
