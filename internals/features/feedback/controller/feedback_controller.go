package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"paperhub_backend/internals/constants"
	model "paperhub_backend/internals/features/feedback/model"
	helper "paperhub_backend/internals/helpers"
)

type FeedbackController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{
		DB:        db,
		Validator: validator.New(),
	}
}

/*
=========================================================

	CREATE (public contact form)
	POST /api/public/feedback
	=========================================================
*/
func (ctl *FeedbackController) Create(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name" validate:"required,max=100"`
		Email   string `json:"email" validate:"required,email,max=120"`
		Subject string `json:"subject" validate:"required,max=200"`
		Message string `json:"message" validate:"required,max=5000"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := model.FeedbackModel{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: req.Subject,
		Message: req.Message,
		Status:  constants.FeedbackPending,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Thanks for your feedback", fiber.Map{
		"id": m.ID,
	})
}

/*
=========================================================

	LIST (admin)
	GET /api/a/feedback?status=pending
	=========================================================
*/
func (ctl *FeedbackController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.FeedbackModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.FeedbackModel
	if err := tx.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

/*
=========================================================

	SET STATUS (admin)
	PATCH /api/a/feedback/:id/status  Body: { "status": "resolved" }
	=========================================================
*/
func (ctl *FeedbackController) SetStatus(c *fiber.Ctx) error {
	param := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil || id == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending resolved"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.FeedbackModel
	if err := ctl.DB.First(&m, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Feedback not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Model(&m).Update("status", req.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	m.Status = req.Status

	return helper.JsonUpdated(c, "Updated", m)
}
