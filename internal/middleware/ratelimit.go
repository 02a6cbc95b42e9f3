package middleware

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed-window request budget per client IP. The
// counter lives in redis so every server process shares one window and
// concurrent requests contend on an atomic INCR instead of unsynchronized
// local state.
type RateLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRateLimiter(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests < 1 {
		maxRequests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Handler returns the fiber middleware. Redis failures fail open: a
// broken limiter must not take the API down with it.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s", c.IP())

		pipe := rl.client.TxPipeline()
		count := pipe.Incr(c.Context(), key)
		pipe.ExpireNX(c.Context(), key, rl.window)
		ttl := pipe.TTL(c.Context(), key)
		if _, err := pipe.Exec(c.Context()); err != nil {
			log.Printf("rate limiter unavailable, allowing request: %v", err)
			return c.Next()
		}

		used := count.Val()
		remaining := int64(rl.maxRequests) - used
		if remaining < 0 {
			remaining = 0
		}
		reset := ttl.Val()
		if reset < 0 {
			reset = rl.window
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(int64(reset.Seconds()), 10))

		if used > int64(rl.maxRequests) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "rate limit exceeded",
				"error_code": "RATE_LIMITED",
			})
		}

		return c.Next()
	}
}
