package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RequestLogger records method, path, status and latency for every call.
func RequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
