package model

import (
	"fmt"
	"time"

	userModel "paperhub_backend/internals/features/users/user/model"
)

// Moderation states derived from the lifecycle columns.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PaperModel represents the papers table. The column set, including the
// legacy fallback fields, is shared with data ingested before the storage
// migration and must stay stable.
type PaperModel struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Subject  string `gorm:"size:100;not null" json:"subject"`
	Year     int    `gorm:"not null" json:"year"`
	Semester string `gorm:"size:50;not null" json:"semester"`
	College  string `gorm:"size:200" json:"college"`
	Course   string `gorm:"size:100" json:"course"`
	ExamType string `gorm:"size:50;default:Regular" json:"exam_type"`

	// Managed-storage reference (bytes live with the provider).
	CloudinaryPublicID     string `gorm:"size:500" json:"cloudinary_public_id"`
	CloudinaryURL          string `gorm:"size:500" json:"cloudinary_url"`
	CloudinaryResourceType string `gorm:"size:50" json:"cloudinary_resource_type"`
	FileFormat             string `gorm:"size:10" json:"file_format"`
	FileSize               *int64 `json:"file_size"`

	// Legacy fields, kept for papers ingested before the storage migration.
	DownloadLink string `gorm:"size:500" json:"download_link"`
	FilePath     string `gorm:"size:500" json:"file_path"`
	CloudURL     string `gorm:"size:500" json:"cloud_url"`

	UploadedBy      uint       `gorm:"not null;index" json:"uploaded_by"`
	UploadDate      time.Time  `gorm:"autoCreateTime" json:"upload_date"`
	DownloadCount   int64      `gorm:"not null;default:0" json:"download_count"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	IsApproved      bool       `gorm:"not null;default:false" json:"is_approved"`
	ApprovalDate    *time.Time `json:"approval_date"`
	ApprovedBy      *uint      `json:"approved_by"`
	RejectionReason *string    `json:"rejection_reason"`

	Uploader *userModel.UserModel `gorm:"foreignKey:UploadedBy" json:"-"`
	Approver *userModel.UserModel `gorm:"foreignKey:ApprovedBy" json:"-"`
}

func (PaperModel) TableName() string {
	return "papers"
}

// MarkApproved flips the paper into the approved state. Durability and the
// matching audit-log row are the workflow service's responsibility.
func (p *PaperModel) MarkApproved(adminID uint, now time.Time) {
	p.IsApproved = true
	p.ApprovalDate = &now
	p.ApprovedBy = &adminID
	p.RejectionReason = nil
}

// MarkRejected flips the paper into the rejected state. The approval date is
// cleared; ApprovedBy records the rejecting admin.
func (p *PaperModel) MarkRejected(adminID uint, reason string) {
	p.IsApproved = false
	p.ApprovalDate = nil
	p.ApprovedBy = &adminID
	p.RejectionReason = &reason
}

// Status derives the moderation state: approved, rejected (moderated but not
// approved), or pending (never moderated).
func (p *PaperModel) Status() string {
	if p.IsApproved {
		return StatusApproved
	}
	if p.ApprovedBy != nil {
		return StatusRejected
	}
	return StatusPending
}

// DownloadURL resolves the link to hand out: managed-storage URL first, then
// the legacy bare link. The order is load-bearing for pre-migration rows.
func (p *PaperModel) DownloadURL() (string, bool) {
	if p.CloudinaryURL != "" {
		return p.CloudinaryURL, true
	}
	if p.DownloadLink != "" {
		return p.DownloadLink, true
	}
	return "", false
}

// FileSizeFormatted renders the stored byte size for display.
func (p *PaperModel) FileSizeFormatted() string {
	return FormatFileSize(p.FileSize)
}

// FormatFileSize renders a byte count with binary (1024-based) units. A nil
// or zero size renders as "Unknown".
func FormatFileSize(size *int64) string {
	if size == nil || *size == 0 {
		return "Unknown"
	}
	s := *size
	switch {
	case s < 1024:
		return fmt.Sprintf("%d B", s)
	case s < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(s)/1024)
	case s < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(s)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(s)/(1024*1024*1024))
	}
}
