package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[uuid.UUID]bool

func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if !s[id] {
		return nil, errors.New("not found")
	}
	return &model.User{ID: id}, nil
}

func TestAuth(t *testing.T) {
	jwtSvc, err := service.NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}, "test")
	require.NoError(t, err)

	known := uuid.New()
	app := fiber.New()
	app.Get("/me", Auth(jwtSvc, stubUsers{known: true}), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})

	knownToken, err := jwtSvc.GenerateToken(known)
	require.NoError(t, err)
	ghostToken, err := jwtSvc.GenerateToken(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + knownToken, want: fiber.StatusOK},
		{name: "lowercase scheme", header: "bearer " + knownToken, want: fiber.StatusOK},
		{name: "missing", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", want: fiber.StatusUnauthorized},
		{name: "deleted user", header: "Bearer " + ghostToken, want: fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusNoContent, fiber.StatusNoContent, fiber.StatusTooManyRequests}, codes)
}
