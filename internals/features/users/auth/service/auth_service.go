package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userDTO "paperhub_backend/internals/features/users/user/dto"
	userModel "paperhub_backend/internals/features/users/user/model"
	helper "paperhub_backend/internals/helpers"
)

var validate = validator.New()

// isDuplicateKey: Postgres unique violation (SQLSTATE 23505). Substring
// match keeps this portable across drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "23505")
}

// ========================== REGISTER ==========================
// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Username  string `json:"username" validate:"required,min=3,max=80"`
		Email     string `json:"email" validate:"required,email,max=120"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name" validate:"max=100"`
		LastName  string `json:"last_name" validate:"max=100"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	user := userModel.UserModel{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		IsActive:  true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Username or email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Account created", userDTO.FromModel(&user))
}

// ========================== LOGIN ==========================
// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	// login by username or email
	ident := strings.TrimSpace(input.Username)
	var user userModel.UserModel
	if err := db.Where("username = ? OR email = ?", ident, strings.ToLower(ident)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !user.CheckPassword(input.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, expiresAt, err := IssueAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	setAccessCookie(c, token, expiresAt)

	return helper.JsonOK(c, "Login success", fiber.Map{
		"access_token": token,
		"expires_at":   expiresAt.UTC().Format(time.RFC3339),
		"user":         userDTO.FromModel(&user),
	})
}

// ========================== LOGOUT ==========================
// POST /api/auth/logout
// Tokens are stateless; logout just clears the cookie for browser clients.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
	return helper.JsonOK(c, "Logged out", nil)
}

// ========================== CHANGE PASSWORD ==========================
// POST /api/u/auth/change-password
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidationError(c, fieldErrors(err))
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if !user.CheckPassword(input.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", user.PasswordHash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}
