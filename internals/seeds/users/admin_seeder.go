package users

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"paperhub_backend/internals/configs"
	userModel "paperhub_backend/internals/features/users/user/model"
)

// EnsureDefaultAdmin creates the initial administrative account when no
// user named "admin" exists yet. Idempotent: reruns against a store that
// already has the account change nothing.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var existing userModel.UserModel
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := userModel.UserModel{
		Username: "admin",
		Email:    "admin@university.edu",
		IsActive: true,
		IsAdmin:  true,
	}
	if err := admin.SetPassword(configs.AdminDefaultPassword); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("[INFO] default admin user created")
	return nil
}
