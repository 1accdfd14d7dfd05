package client

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
)

// Balance handles GET /clients/:id/balance. An unknown client reads as
// zero, never as an error.
func Balance(c *fiber.Ctx) error {
	chatID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	var cl models.Client
	balance := int64(0)
	if err := database.DB.Where("chat_id = ?", chatID).First(&cl).Error; err == nil {
		balance = cl.Balance
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"client_chat_id": chatID,
		"balance":        balance,
	})
}
