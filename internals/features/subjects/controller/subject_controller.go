package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "paperhub_backend/internals/features/subjects/dto"
	model "paperhub_backend/internals/features/subjects/model"
	helper "paperhub_backend/internals/helpers"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *SubjectController) getID(c *fiber.Ctx) (uint, error) {
	param := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "23505")
}

/*
=========================================================

	LIST (public, active only; admin sees all with ?all=true)
	GET /api/public/subjects
	=========================================================
*/
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	tx := ctl.DB.Model(&model.SubjectModel{})
	if strings.ToLower(strings.TrimSpace(c.Query("all"))) != "true" {
		tx = tx.Where("is_active = ?", true)
	}
	if dep := strings.TrimSpace(c.Query("department")); dep != "" {
		tx = tx.Where("department = ?", dep)
	}

	var rows []model.SubjectModel
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", rows)
}

/*
=========================================================

	CREATE (admin)
	POST /api/a/subjects
	=========================================================
*/
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "subject name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Created", m)
}

/*
=========================================================

	PATCH (admin)
	PATCH /api/a/subjects/:id
	=========================================================
*/
func (ctl *SubjectController) Patch(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.PatchSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := req.ValidatePartial(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.SubjectModel
	if err := ctl.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyPatch(&m)

	if err := ctl.DB.Save(&m).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "subject name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Updated", m)
}

/*
=========================================================

	DELETE (admin)
	DELETE /api/a/subjects/:id
	=========================================================
*/
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.SubjectModel
	if err := ctl.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Deleted", fiber.Map{
		"id": id,
	})
}
