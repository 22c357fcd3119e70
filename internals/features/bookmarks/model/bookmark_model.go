package model

import (
	"time"

	paperModel "paperhub_backend/internals/features/papers/paper/model"
	userModel "paperhub_backend/internals/features/users/user/model"
)

// BookmarkModel links a user to a paper. At most one row may exist per
// (user_id, paper_id) pair; the named unique constraint is part of the
// persisted layout. Rows are cascade-deleted with their owning user or
// paper.
type BookmarkModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:unique_user_paper_bookmark" json:"user_id"`
	PaperID   uint      `gorm:"not null;uniqueIndex:unique_user_paper_bookmark" json:"paper_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *userModel.UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Paper *paperModel.PaperModel `gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE" json:"paper,omitempty"`
}

func (BookmarkModel) TableName() string {
	return "bookmarks"
}
