package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	model "paperhub_backend/internals/features/subjects/model"
)

type CreateSubjectRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Code       string `json:"code" validate:"max=20"`
	Department string `json:"department" validate:"max=100"`
	Credits    int    `json:"credits" validate:"min=0,max=60"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Department = strings.TrimSpace(r.Department)
}

func (r *CreateSubjectRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{
		Name:       r.Name,
		Code:       r.Code,
		Department: r.Department,
		Credits:    r.Credits,
		IsActive:   true,
	}
}

// PatchSubjectRequest is tri-state: nil fields are left untouched.
type PatchSubjectRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Code       *string `json:"code" validate:"omitempty,max=20"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Credits    *int    `json:"credits" validate:"omitempty,min=0,max=60"`
	IsActive   *bool   `json:"is_active"`
}

func (r *PatchSubjectRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
	if r.Department != nil {
		v := strings.TrimSpace(*r.Department)
		r.Department = &v
	}
}

func (r *PatchSubjectRequest) ValidatePartial(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *PatchSubjectRequest) ApplyPatch(m *model.SubjectModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Code != nil {
		m.Code = *r.Code
	}
	if r.Department != nil {
		m.Department = *r.Department
	}
	if r.Credits != nil {
		m.Credits = *r.Credits
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
