package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// AppConfig is the Fiber configuration the API routes rely on.
// Path params are unescaped so wallets like "my%20wallet" match what was stored,
// and Params/Query strings are copied since services keep them past the handler (span attributes).
func AppConfig(readTimeout, writeTimeout time.Duration) fiber.Config {
	return fiber.Config{
		AppName:      "dognft",
		ErrorHandler: ErrorHandler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		UnescapePath: true,
		Immutable:    true,
	}
}
