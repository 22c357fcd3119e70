// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"paperhub_backend/internals/configs"
	userModel "paperhub_backend/internals/features/users/user/model"
)

const accessTTL = 24 * time.Hour

// IssueAccessToken signs an HS256 token carrying the identity claims the
// auth middleware expects.
func IssueAccessToken(user *userModel.UserModel) (string, time.Time, error) {
	if configs.JWTSecret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not set")
	}

	now := time.Now()
	expiresAt := now.Add(accessTTL)

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func setAccessCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}
