package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TonWebhookAuth rejects webhook deliveries whose bearer token does not
// match the shared secret. Runs before any payload parsing.
func TonWebhookAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" || token == auth ||
			subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_WEBHOOK_TOKEN",
			})
		}

		return c.Next()
	}
}
