package seeds

import (
	"gorm.io/gorm"

	"paperhub_backend/internals/seeds/subjects"
	"paperhub_backend/internals/seeds/users"
)

// RunAllSeeds applies the idempotent startup seeds: the default admin
// account and the baseline subject taxonomy.
func RunAllSeeds(db *gorm.DB) error {
	if err := users.EnsureDefaultAdmin(db); err != nil {
		return err
	}
	return subjects.SeedBaselineSubjects(db)
}
