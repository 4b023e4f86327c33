package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
)

func SetupMiddleware(router fiber.Router, passkey string) {

	router.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "*",
	}))
	router.Use(errorHandle)
	router.Use(logRequest)
	router.Use(authenticate(passkey))
}

func errorHandle(c *fiber.Ctx) error {

	err := c.Next()
	if err != nil {
		log.Error().Err(err).Msg("Error in middleware")
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return nil
}

func logRequest(c *fiber.Ctx) error {
	log.Info().Str("endpoint", c.Path()).Msg("Request endpoint")
	return c.Next()
}

// authenticate rejects requests lacking the shared passkey. The bot sets it
// on every forwarded command. Empty passkey disables the check.
func authenticate(passkey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if passkey != "" && c.Get("Authorization") != passkey {
			return c.Status(fiber.StatusUnauthorized).SendString("unauthorized")
		}
		return c.Next()
	}
}
