package ton

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"loyalty/config"
	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
	"loyalty/providers/tonapi"
)

var (
	cfg    config.Config
	client *tonapi.Client
)

// Configure injects the process config and TonAPI client once at startup.
func Configure(c config.Config, cl *tonapi.Client) {
	cfg = c
	client = cl
}

// DepositInfo handles GET /api/ton/deposit-info. The partner funds its
// cashback deposit by sending USDT to the platform wallet with its chat
// id as the transfer comment.
func DepositInfo(c *fiber.Ctx) error {
	partnerChatID, err := strconv.ParseInt(c.Query("partner_chat_id"), 10, 64)
	if err != nil || partnerChatID == 0 {
		return helpers.JSONError(c, "PARTNER_CHAT_ID_REQUIRED")
	}

	var partner models.Partner
	if err := database.DB.Where("chat_id = ?", partnerChatID).First(&partner).Error; err != nil {
		return helpers.JSONNotFound(c, "PARTNER_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Deposit info", fiber.Map{
		"wallet_address":     tonapi.RawToFriendly(cfg.PlatformWallet),
		"wallet_address_raw": tonapi.NormalizeAddress(cfg.PlatformWallet),
		"jetton_master":      cfg.USDTJettonMaster,
		"comment":            strconv.FormatInt(partnerChatID, 10),
		"points_per_usdt":    cfg.PointsPerUSDT,
	})
}
