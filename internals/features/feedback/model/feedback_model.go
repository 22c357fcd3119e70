package model

import "time"

// FeedbackModel is a standalone contact submission; it has no relationship
// to the other entities.
type FeedbackModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:120;not null" json:"email"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	Status    string    `gorm:"size:20;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FeedbackModel) TableName() string {
	return "feedback"
}
