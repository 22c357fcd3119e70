package model

import (
	"time"

	userModel "paperhub_backend/internals/features/users/user/model"
)

// UploadLogModel is the append-only audit trail for actions taken against
// papers. Rows are never updated or deleted. PaperID is nullable: an action
// can fail before a paper row exists, or target a row that is later gone.
type UploadLogModel struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	PaperID            *uint     `gorm:"index" json:"paper_id"`
	CloudinaryPublicID string    `gorm:"size:500" json:"cloudinary_public_id"`
	Action             string    `gorm:"size:50;index" json:"action"`
	Status             string    `gorm:"size:50" json:"status"`
	ErrorMessage       *string   `json:"error_message"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *userModel.UserModel `gorm:"foreignKey:UserID" json:"-"`
	Paper *PaperModel          `gorm:"foreignKey:PaperID" json:"-"`
}

func (UploadLogModel) TableName() string {
	return "upload_logs"
}
