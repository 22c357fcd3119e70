package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"paperhub_backend/internals/constants"
	database "paperhub_backend/internals/databases"
	model "paperhub_backend/internals/features/papers/paper/model"
	userModel "paperhub_backend/internals/features/users/user/model"
	"paperhub_backend/internals/helpers/storage"
)

/* =========================
   Fakes and fixtures
   ========================= */

type fakeStorage struct {
	uploadErr error
	uploads   int
	deletes   []string
}

func (f *fakeStorage) Upload(_ context.Context, r io.Reader, filename string) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	f.uploads++
	return &storage.UploadResult{
		PublicID:     fmt.Sprintf("papers/fake_%d", f.uploads),
		URL:          fmt.Sprintf("https://res.example/papers/fake_%d", f.uploads),
		ResourceType: "raw",
		Format:       "pdf",
		Bytes:        n,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID, _ string) error {
	f.deletes = append(f.deletes, publicID)
	return nil
}

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

func seedUser(t *testing.T, db *gorm.DB, name string, admin bool) *userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		Username: name,
		Email:    name + "@example.edu",
		IsActive: true,
		IsAdmin:  admin,
	}
	if err := u.SetPassword("test-password-1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return &u
}

// asUser simulates what the auth middleware leaves behind for handlers.
func asUser(u *userModel.UserModel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID)
		c.Locals("username", u.Username)
		c.Locals("is_admin", u.IsAdmin)
		return c.Next()
	}
}

func newUploadApp(db *gorm.DB, store storage.ObjectStorage, actor *userModel.UserModel) *fiber.App {
	app := fiber.New()
	ctl := NewPaperController(db, store)
	app.Post("/papers", asUser(actor), ctl.Upload)
	app.Get("/papers/:id/download", ctl.Download)
	return app
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, content []byte) (*http.Request, error) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, "/papers", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

var uploadFields = map[string]string{
	"title":    "Calculus Midterm",
	"subject":  "Mathematics",
	"year":     "2023",
	"semester": "Fall",
	"course":   "MATH201",
}

/* =========================
   Tests
   ========================= */

func TestUploadCreatesPendingPaper(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	store := &fakeStorage{}
	app := newUploadApp(db, store, uploader)

	content := []byte("%PDF-1.4 fake exam paper")
	req, err := multipartUpload(t, uploadFields, "calc_midterm.pdf", content)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var paper model.PaperModel
	if err := db.First(&paper, "uploaded_by = ?", uploader.ID).Error; err != nil {
		t.Fatalf("paper row missing: %v", err)
	}
	if paper.Status() != model.StatusPending {
		t.Errorf("new upload status = %q, want pending", paper.Status())
	}
	if paper.CloudinaryPublicID != "papers/fake_1" {
		t.Errorf("cloudinary_public_id = %q", paper.CloudinaryPublicID)
	}
	if paper.FileFormat != "pdf" {
		t.Errorf("file_format = %q, want pdf", paper.FileFormat)
	}
	if paper.FileSize == nil || *paper.FileSize != int64(len(content)) {
		t.Error("file_size must record the stored byte count")
	}
	if paper.ExamType != constants.DefaultExamType {
		t.Errorf("exam_type = %q, want the default", paper.ExamType)
	}

	var logRow model.UploadLogModel
	if err := db.First(&logRow, "action = ? AND status = ?", constants.ActionUpload, constants.StatusSuccess).Error; err != nil {
		t.Fatalf("success log row missing: %v", err)
	}
	if logRow.PaperID == nil || *logRow.PaperID != paper.ID {
		t.Error("log row must reference the new paper")
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	app := newUploadApp(db, &fakeStorage{}, uploader)

	req, err := multipartUpload(t, uploadFields, "malware.exe", []byte("MZ"))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&model.PaperModel{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("paper rows = %d, want none", n)
	}
}

func TestUploadStorageFailureLogsAndReports(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	store := &fakeStorage{uploadErr: errors.New("media host unreachable")}
	app := newUploadApp(db, store, uploader)

	req, err := multipartUpload(t, uploadFields, "calc_midterm.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&model.PaperModel{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("paper rows = %d, want none", n)
	}

	var logRow model.UploadLogModel
	if err := db.First(&logRow, "status = ?", constants.StatusFailed).Error; err != nil {
		t.Fatalf("failed log row missing: %v", err)
	}
	if logRow.PaperID != nil {
		t.Error("failed upload must not reference a paper")
	}
	if logRow.UserID != uploader.ID {
		t.Error("failed upload must record the acting user")
	}
}

func TestDownloadBumpsCounterAndResolvesURL(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	app := newUploadApp(db, &fakeStorage{}, uploader)

	paper := model.PaperModel{
		Title:         "Physics Final",
		Subject:       "Physics",
		Year:          2024,
		Semester:      "Spring",
		ExamType:      constants.DefaultExamType,
		CloudinaryURL: "https://res.example/papers/phy_final",
		UploadedBy:    uploader.ID,
		IsActive:      true,
		IsApproved:    true,
	}
	if err := db.Create(&paper).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/papers/%d/download", paper.ID), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var stored model.PaperModel
	if err := db.First(&stored, paper.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.DownloadCount != 1 {
		t.Errorf("download_count = %d, want 1", stored.DownloadCount)
	}
}

func TestDownloadPendingPaperIsHidden(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	app := newUploadApp(db, &fakeStorage{}, uploader)

	paper := model.PaperModel{
		Title:      "Unreviewed",
		Subject:    "History",
		Year:       2024,
		Semester:   "Spring",
		ExamType:   constants.DefaultExamType,
		UploadedBy: uploader.ID,
		IsActive:   true,
	}
	if err := db.Create(&paper).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/papers/%d/download", paper.ID), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetPendingPaperVisibility(t *testing.T) {
	db := newTestDB(t)
	uploader := seedUser(t, db, "student", false)
	stranger := seedUser(t, db, "other", false)
	admin := seedUser(t, db, "admin", true)

	paper := model.PaperModel{
		Title:      "Unreviewed",
		Subject:    "History",
		Year:       2024,
		Semester:   "Spring",
		ExamType:   constants.DefaultExamType,
		UploadedBy: uploader.ID,
		IsActive:   true,
	}
	if err := db.Create(&paper).Error; err != nil {
		t.Fatal(err)
	}

	ctl := NewPaperController(db, &fakeStorage{})
	app := fiber.New()
	app.Get("/public/papers/:id", ctl.Get)
	app.Get("/mine/papers/:id", asUser(uploader), ctl.Get)
	app.Get("/other/papers/:id", asUser(stranger), ctl.Get)
	app.Get("/admin/papers/:id", asUser(admin), ctl.Get)

	cases := []struct {
		name string
		path string
		want int
	}{
		{"anonymous sees nothing", "/public/papers/%d", fiber.StatusNotFound},
		{"uploader sees own pending paper", "/mine/papers/%d", fiber.StatusOK},
		{"other user sees nothing", "/other/papers/%d", fiber.StatusNotFound},
		{"admin sees pending paper", "/admin/papers/%d", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf(tc.path, paper.ID), nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
