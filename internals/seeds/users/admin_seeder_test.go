package users

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"paperhub_backend/internals/configs"
	database "paperhub_backend/internals/databases"
	userModel "paperhub_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	configs.AdminDefaultPassword = "seed-secret-1"
	db := newTestDB(t)

	if err := EnsureDefaultAdmin(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := EnsureDefaultAdmin(db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var admins []userModel.UserModel
	if err := db.Where("username = ?", "admin").Find(&admins).Error; err != nil {
		t.Fatal(err)
	}
	if len(admins) != 1 {
		t.Fatalf("admin rows = %d, want exactly 1", len(admins))
	}

	admin := admins[0]
	if !admin.IsAdmin {
		t.Error("seeded account must be an administrator")
	}
	if !admin.IsActive {
		t.Error("seeded account must be active")
	}
	if !admin.CheckPassword("seed-secret-1") {
		t.Error("seeded account must use the configured default password")
	}
}

func TestEnsureDefaultAdminKeepsExistingAccount(t *testing.T) {
	configs.AdminDefaultPassword = "seed-secret-1"
	db := newTestDB(t)

	existing := userModel.UserModel{
		Username: "admin",
		Email:    "ops@university.edu",
		IsActive: true,
		IsAdmin:  true,
	}
	if err := existing.SetPassword("rotated-by-ops"); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	if err := EnsureDefaultAdmin(db); err != nil {
		t.Fatal(err)
	}

	var stored userModel.UserModel
	if err := db.Where("username = ?", "admin").First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Email != "ops@university.edu" {
		t.Error("seeder must not overwrite an existing admin account")
	}
	if !stored.CheckPassword("rotated-by-ops") {
		t.Error("seeder must not reset a rotated password")
	}
}
