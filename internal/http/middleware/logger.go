package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"dognft/internal/logger"
)

// Logger is a middleware that logs each HTTP request in JSON format to stdout.
// Fields: request_id, method, path, status, latency (milliseconds) and ts in loc.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter is Logger writing to w.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	l := logger.New(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Status is read after the handler so errors returned to the ErrorHandler are counted correctly.
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if status >= fiber.StatusInternalServerError {
			entry["level"] = "error"
		}
		l.JSON(loc, entry)

		return err
	}
}
