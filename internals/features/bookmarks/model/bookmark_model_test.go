package model_test

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "paperhub_backend/internals/databases"
	bookmarkModel "paperhub_backend/internals/features/bookmarks/model"
	paperModel "paperhub_backend/internals/features/papers/paper/model"
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
	// a single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		Username: name,
		Email:    name + "@example.edu",
		IsActive: true,
	}
	if err := u.SetPassword("test-password-1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return &u
}

func seedPaper(t *testing.T, db *gorm.DB, uploadedBy uint, title string) *paperModel.PaperModel {
	t.Helper()
	p := paperModel.PaperModel{
		Title:      title,
		Subject:    "Mathematics",
		Year:       2023,
		Semester:   "Fall",
		ExamType:   "Regular",
		UploadedBy: uploadedBy,
		IsActive:   true,
		IsApproved: true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed paper: %v", err)
	}
	return &p
}

func TestBookmarkPairUniqueness(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	paper := seedPaper(t, db, alice.ID, "Calculus Midterm")

	if err := db.Create(&bookmarkModel.BookmarkModel{UserID: alice.ID, PaperID: paper.ID}).Error; err != nil {
		t.Fatalf("first bookmark: %v", err)
	}

	err := db.Create(&bookmarkModel.BookmarkModel{UserID: alice.ID, PaperID: paper.ID}).Error
	if err == nil {
		t.Fatal("duplicate (user, paper) bookmark must be rejected")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Fatalf("want a unique constraint violation, got %v", err)
	}

	// the same paper may be bookmarked by a different user
	if err := db.Create(&bookmarkModel.BookmarkModel{UserID: bob.ID, PaperID: paper.ID}).Error; err != nil {
		t.Fatalf("second user bookmark: %v", err)
	}
}

func TestBookmarksCascadeWithUser(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	paper := seedPaper(t, db, bob.ID, "Physics Final")

	if err := db.Create(&bookmarkModel.BookmarkModel{UserID: alice.ID, PaperID: paper.ID}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&bookmarkModel.BookmarkModel{UserID: bob.ID, PaperID: paper.ID}).Error; err != nil {
		t.Fatal(err)
	}

	if err := db.Delete(&userModel.UserModel{}, alice.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var n int64
	if err := db.Model(&bookmarkModel.BookmarkModel{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("bookmarks after user delete = %d, want 1", n)
	}

	// the bookmarked paper itself is untouched
	var stored paperModel.PaperModel
	if err := db.First(&stored, paper.ID).Error; err != nil {
		t.Errorf("paper must survive the user delete: %v", err)
	}
}
