package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "userId"

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

// Auth requires a bearer token for an existing user and stores the user id
// in the request locals.
func Auth(tokens TokenValidator, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return unauthorized(c, "Authentication required", nil)
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "Token expired"
			}
			return unauthorized(c, msg, err)
		}

		if _, err := users.FindByID(c.UserContext(), claims.UserID); err != nil {
			return unauthorized(c, "User not found", err)
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the id stored by Auth.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusUnauthorized,
		Message: message,
	}, err)
}
