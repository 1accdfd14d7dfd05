package promotion

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
)

type RedeemRequest struct {
	ClientChatID  int64 `json:"client_chat_id"`
	PromotionID   uint  `json:"promotion_id"`
	PointsToSpend int64 `json:"points_to_spend"`
}

// Redeem handles POST /api/redeem-promotion. It is a pure
// validation-and-quote step: the voucher describes a pending redemption
// confirmed later by a partner-side scan, and no balance is mutated here.
func Redeem(c *fiber.Ctx) error {
	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.ClientChatID == 0 || req.PromotionID == 0 || req.PointsToSpend <= 0 {
		return helpers.JSONError(c, "CLIENT_PROMOTION_AND_POINTS_REQUIRED")
	}

	var promo models.Promotion
	if err := database.DB.First(&promo, req.PromotionID).Error; err != nil {
		return helpers.JSONNotFound(c, "PROMOTION_NOT_FOUND")
	}

	if !promo.ActiveOn(time.Now()) {
		return helpers.JSONError(c, "PROMOTION_NOT_ACTIVE")
	}

	if promo.MaxPointsPayment <= 0 {
		return helpers.JSONError(c, "POINTS_PAYMENT_NOT_SUPPORTED")
	}

	usdValue := float64(req.PointsToSpend) * promo.PointsToDollarRate
	if usdValue > float64(promo.MaxPointsPayment) {
		return helpers.JSONError(c, "MAX_POINTS_PAYMENT_EXCEEDED")
	}

	var client models.Client
	balance := int64(0)
	if err := database.DB.Where("chat_id = ?", req.ClientChatID).First(&client).Error; err == nil {
		balance = client.Balance
	}
	if req.PointsToSpend > balance {
		return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
	}

	remainingDue := promo.ServicePrice - usdValue
	if remainingDue < 0 {
		remainingDue = 0
	}

	qrData := fmt.Sprintf("promo:%d|client:%d|points:%d|usd:%.2f",
		promo.ID, req.ClientChatID, req.PointsToSpend, usdValue)

	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GENERATE_QR")
	}

	return helpers.JSONSuccess(c, "Redemption quote generated", fiber.Map{
		"promotion_id":    promo.ID,
		"client_chat_id":  req.ClientChatID,
		"balance":         balance,
		"points_to_spend": req.PointsToSpend,
		"usd_value":       helpers.FormatFloat(usdValue, 2),
		"remaining_due":   helpers.FormatFloat(remainingDue, 2),
		"qr_data":         qrData,
		"qr_image":        base64.StdEncoding.EncodeToString(png),
	})
}
