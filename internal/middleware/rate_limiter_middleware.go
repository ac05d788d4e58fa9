package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type RateLimiterOption func(*limiter.Config)

// WithStorage keeps the limiter counters in a shared store instead of memory.
func WithStorage(storage fiber.Storage) RateLimiterOption {
	return func(cfg *limiter.Config) {
		if storage != nil {
			cfg.Storage = storage
		}
	}
}

// WithUserKey limits per authenticated user, falling back to the client IP.
func WithUserKey() RateLimiterOption {
	return func(cfg *limiter.Config) {
		cfg.KeyGenerator = func(c *fiber.Ctx) string {
			if id, ok := UserID(c); ok {
				return "user:" + id.String()
			}
			return c.IP()
		}
	}
}

func RateLimiter(max int, expiration time.Duration, opts ...RateLimiterOption) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	cfg := limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return limiter.New(cfg)
}
