package model

// SubjectModel is the course/subject taxonomy table. Papers reference
// subjects by free-text name only, not by foreign key; keep that in mind
// when renaming rows here.
type SubjectModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Code       string `gorm:"size:20" json:"code"`
	Department string `gorm:"size:100" json:"department"`
	Credits    int    `json:"credits"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`
}

func (SubjectModel) TableName() string {
	return "subjects"
}
