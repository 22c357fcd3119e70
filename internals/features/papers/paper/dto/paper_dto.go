package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"paperhub_backend/internals/constants"
	model "paperhub_backend/internals/features/papers/paper/model"
)

/* =========================
   Requests
   ========================= */

// UploadPaperRequest carries the multipart form fields that accompany the
// file on upload.
type UploadPaperRequest struct {
	Title    string `form:"title" validate:"required,max=200"`
	Subject  string `form:"subject" validate:"required,max=100"`
	Year     int    `form:"year" validate:"required,min=1900,max=2100"`
	Semester string `form:"semester" validate:"required,max=50"`
	College  string `form:"college" validate:"max=200"`
	Course   string `form:"course" validate:"max=100"`
	ExamType string `form:"exam_type" validate:"max=50"`
}

func (r *UploadPaperRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Semester = strings.TrimSpace(r.Semester)
	r.College = strings.TrimSpace(r.College)
	r.Course = strings.TrimSpace(r.Course)
	r.ExamType = strings.TrimSpace(r.ExamType)
	if r.ExamType == "" {
		r.ExamType = constants.DefaultExamType
	}
}

func (r *UploadPaperRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *UploadPaperRequest) ToModel(uploadedBy uint) *model.PaperModel {
	return &model.PaperModel{
		Title:      r.Title,
		Subject:    r.Subject,
		Year:       r.Year,
		Semester:   r.Semester,
		College:    r.College,
		Course:     r.Course,
		ExamType:   r.ExamType,
		UploadedBy: uploadedBy,
		IsActive:   true,
	}
}

// RejectPaperRequest carries the moderation verdict detail.
type RejectPaperRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

/* =========================
   List query
   ========================= */

type ListPapersQuery struct {
	Subject  string
	Year     int
	Semester string
	Search   string
}

func ParseListPapersQuery(c *fiber.Ctx) ListPapersQuery {
	q := ListPapersQuery{
		Subject:  strings.TrimSpace(c.Query("subject")),
		Semester: strings.TrimSpace(c.Query("semester")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(c.Query("year"))); err == nil {
		q.Year = y
	}
	return q
}

/* =========================
   Responses
   ========================= */

type PaperResponse struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Subject           string     `json:"subject"`
	Year              int        `json:"year"`
	Semester          string     `json:"semester"`
	College           string     `json:"college,omitempty"`
	Course            string     `json:"course,omitempty"`
	ExamType          string     `json:"exam_type"`
	FileFormat        string     `json:"file_format,omitempty"`
	FileSize          *int64     `json:"file_size,omitempty"`
	FileSizeFormatted string     `json:"file_size_formatted"`
	DownloadURL       string     `json:"download_url,omitempty"`
	UploadedBy        uint       `json:"uploaded_by"`
	UploadDate        time.Time  `json:"upload_date"`
	DownloadCount     int64      `json:"download_count"`
	Status            string     `json:"status"`
	ApprovalDate      *time.Time `json:"approval_date,omitempty"`
	ApprovedBy        *uint      `json:"approved_by,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
}

func FromModel(p *model.PaperModel) PaperResponse {
	url, _ := p.DownloadURL()
	return PaperResponse{
		ID:                p.ID,
		Title:             p.Title,
		Subject:           p.Subject,
		Year:              p.Year,
		Semester:          p.Semester,
		College:           p.College,
		Course:            p.Course,
		ExamType:          p.ExamType,
		FileFormat:        p.FileFormat,
		FileSize:          p.FileSize,
		FileSizeFormatted: p.FileSizeFormatted(),
		DownloadURL:       url,
		UploadedBy:        p.UploadedBy,
		UploadDate:        p.UploadDate,
		DownloadCount:     p.DownloadCount,
		Status:            p.Status(),
		ApprovalDate:      p.ApprovalDate,
		ApprovedBy:        p.ApprovedBy,
		RejectionReason:   p.RejectionReason,
	}
}

func FromModels(papers []model.PaperModel) []PaperResponse {
	out := make([]PaperResponse, 0, len(papers))
	for i := range papers {
		out = append(out, FromModel(&papers[i]))
	}
	return out
}

type UploadLogResponse struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	PaperID            *uint     `json:"paper_id,omitempty"`
	CloudinaryPublicID string    `json:"cloudinary_public_id,omitempty"`
	Action             string    `json:"action"`
	Status             string    `json:"status"`
	ErrorMessage       *string   `json:"error_message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromLogModels(logs []model.UploadLogModel) []UploadLogResponse {
	out := make([]UploadLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, UploadLogResponse{
			ID:                 l.ID,
			UserID:             l.UserID,
			PaperID:            l.PaperID,
			CloudinaryPublicID: l.CloudinaryPublicID,
			Action:             l.Action,
			Status:             l.Status,
			ErrorMessage:       l.ErrorMessage,
			CreatedAt:          l.CreatedAt,
		})
	}
	return out
}
