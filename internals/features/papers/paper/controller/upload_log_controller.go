package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "paperhub_backend/internals/features/papers/paper/dto"
	"paperhub_backend/internals/features/papers/paper/service"
	helper "paperhub_backend/internals/helpers"
)

// UploadLogController exposes read-only access to the audit trail. There are
// no write endpoints; log rows are created by the lifecycle operations.
type UploadLogController struct {
	DB *gorm.DB
}

func NewUploadLogController(db *gorm.DB) *UploadLogController {
	return &UploadLogController{DB: db}
}

// List returns audit rows, filterable by user, paper, or action.
// GET /api/a/upload-logs?user_id=&paper_id=&action=
func (ctl *UploadLogController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	var f service.LogFilter
	if v := strings.TrimSpace(c.Query("user_id")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid user_id")
		}
		uid := uint(id)
		f.UserID = &uid
	}
	if v := strings.TrimSpace(c.Query("paper_id")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid paper_id")
		}
		pid := uint(id)
		f.PaperID = &pid
	}
	f.Action = strings.TrimSpace(c.Query("action"))

	rows, total, err := service.ListUploadLogs(ctl.DB, f, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromLogModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}
