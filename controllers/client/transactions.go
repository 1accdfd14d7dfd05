package client

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
)

// Transactions handles GET /clients/:id/transactions (latest 50).
func Transactions(c *fiber.Ctx) error {
	chatID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	var txns []models.Transaction
	if err := database.DB.
		Where("client_chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(50).
		Find(&txns).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_TRANSACTIONS")
	}

	return helpers.JSONSuccess(c, "Transactions retrieved successfully", fiber.Map{
		"client_chat_id": chatID,
		"transactions":   txns,
	})
}
