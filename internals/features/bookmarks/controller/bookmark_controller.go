package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "paperhub_backend/internals/features/bookmarks/model"
	paperModel "paperhub_backend/internals/features/papers/paper/model"
	helper "paperhub_backend/internals/helpers"
)

type BookmarkController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBookmarkController(db *gorm.DB) *BookmarkController {
	return &BookmarkController{
		DB:        db,
		Validator: validator.New(),
	}
}

// isDuplicateKey: unique violation (SQLSTATE 23505); substring match keeps
// it portable across drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "23505")
}

func mustUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

/*
=========================================================

	LIST MINE
	GET /api/u/bookmarks
	=========================================================
*/
func (ctl *BookmarkController) List(c *fiber.Ctx) error {
	userID, ok := mustUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.BookmarkModel{}).Where("user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.BookmarkModel
	if err := tx.Preload("Paper").
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

/*
=========================================================

	CREATE
	POST /api/u/bookmarks  Body: { "paper_id": 1 }
	Duplicate (user, paper) pairs are rejected with 409.
	=========================================================
*/
func (ctl *BookmarkController) Create(c *fiber.Ctx) error {
	userID, ok := mustUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req struct {
		PaperID uint `json:"paper_id" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// only live, approved papers can be bookmarked
	var paper paperModel.PaperModel
	if err := ctl.DB.First(&paper, "id = ? AND is_active = ? AND is_approved = ?", req.PaperID, true, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	bookmark := model.BookmarkModel{
		UserID:  userID,
		PaperID: req.PaperID,
	}
	if err := ctl.DB.Create(&bookmark).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Paper is already bookmarked")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Bookmarked", bookmark)
}

/*
=========================================================

	DELETE
	DELETE /api/u/bookmarks/:paper_id
	=========================================================
*/
func (ctl *BookmarkController) Delete(c *fiber.Ctx) error {
	userID, ok := mustUserID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	param := strings.TrimSpace(c.Params("paper_id"))
	paperID, err := strconv.ParseUint(param, 10, 64)
	if err != nil || paperID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid paper id")
	}

	res := ctl.DB.Where("user_id = ? AND paper_id = ?", userID, uint(paperID)).
		Delete(&model.BookmarkModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Bookmark not found")
	}

	return helper.JsonDeleted(c, "Bookmark removed", fiber.Map{
		"paper_id": paperID,
	})
}
