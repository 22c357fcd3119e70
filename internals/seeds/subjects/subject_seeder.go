package subjects

import (
	"log"

	"gorm.io/gorm"

	subjectModel "paperhub_backend/internals/features/subjects/model"
)

var baseline = []subjectModel.SubjectModel{
	{Name: "Mathematics", Code: "MATH", Department: "Science", Credits: 4, IsActive: true},
	{Name: "Physics", Code: "PHY", Department: "Science", Credits: 4, IsActive: true},
	{Name: "Chemistry", Code: "CHEM", Department: "Science", Credits: 4, IsActive: true},
	{Name: "Computer Science", Code: "CS", Department: "Engineering", Credits: 4, IsActive: true},
	{Name: "English", Code: "ENG", Department: "Humanities", Credits: 3, IsActive: true},
}

// SeedBaselineSubjects inserts the starter taxonomy, skipping names that
// already exist.
func SeedBaselineSubjects(db *gorm.DB) error {
	var existing []string
	if err := db.Model(&subjectModel.SubjectModel{}).
		Pluck("name", &existing).Error; err != nil {
		return err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	var toInsert []subjectModel.SubjectModel
	for _, s := range baseline {
		if !existingSet[s.Name] {
			toInsert = append(toInsert, s)
		}
	}
	if len(toInsert) == 0 {
		return nil
	}
	if err := db.Create(&toInsert).Error; err != nil {
		return err
	}
	log.Printf("[INFO] seeded %d subjects", len(toInsert))
	return nil
}
