package ton

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loyalty/database"
	"loyalty/models"
	"loyalty/providers/tonapi"
)

// Webhook handles POST /api/ton/webhook. It consumes TonAPI transaction
// events, filters for USDT transfers into the platform wallet, and
// credits the partner deposit named in the transfer comment exactly once
// per event id. One action's failure never aborts its siblings.
func Webhook(c *fiber.Ctx) error {
	var payload tonapi.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("⚠️  invalid TON webhook payload: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("BAD_PAYLOAD")
	}

	event := payload.Event
	if event == nil && payload.TxHash != "" && client != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
		defer cancel()

		fetched, err := client.GetEventByHash(ctx, payload.TxHash)
		if err != nil {
			log.Printf("⚠️  fetch event %s: %v", payload.TxHash, err)
			return c.SendString("OK")
		}
		event = fetched
	}

	if event == nil || event.EventID == "" {
		return c.SendString("OK")
	}

	wallet := tonapi.NormalizeAddress(cfg.PlatformWallet)
	jetton := tonapi.NormalizeAddress(cfg.USDTJettonMaster)

	for i, action := range event.Actions {
		if err := processAction(event, action, wallet, jetton); err != nil {
			log.Printf("⚠️  event %s action %d: %v", event.EventID, i, err)
		}
	}

	return c.SendString("OK")
}

func processAction(event *tonapi.Event, action tonapi.Action, wallet, jetton string) error {
	jt := action.JettonTransfer
	if jt == nil || action.Status != "ok" {
		return nil
	}

	// Wrong asset or wrong recipient: not our deposit, ignore entirely.
	if tonapi.NormalizeAddress(jt.Jetton.Address) != jetton {
		return nil
	}
	if tonapi.NormalizeAddress(jt.Recipient.Address) != wallet {
		return nil
	}

	// The transfer comment correlates the deposit to a partner.
	comment := strings.TrimSpace(jt.Comment)
	if comment == "" {
		return nil
	}
	partnerChatID, err := strconv.ParseInt(comment, 10, 64)
	if err != nil {
		return nil
	}

	amount := tonapi.JettonUnitsToAmount(jt.Amount, jt.Jetton.Decimals)
	if amount <= 0 {
		return nil
	}

	// Dedupe by the provider's event id: duplicate deliveries of the same
	// event must credit at most once.
	var seen int64
	if err := database.DB.Model(&models.OnChainPayment{}).
		Where("tx_hash = ?", event.EventID).
		Count(&seen).Error; err != nil {
		return err
	}
	if seen > 0 {
		return nil
	}

	var partner models.Partner
	if err := database.DB.Where("chat_id = ?", partnerChatID).First(&partner).Error; err != nil {
		// Funds arrived but cannot be attributed; operational alert, no
		// auto-refund.
		log.Printf("🚨 unattributable deposit: event %s, comment %q, amount %.2f",
			event.EventID, comment, amount)
		return nil
	}

	points := int64(math.Floor(amount * cfg.PointsPerUSDT))

	raw, _ := json.Marshal(jt)
	payment := models.OnChainPayment{
		TxHash:         event.EventID,
		PartnerChatID:  partnerChatID,
		Amount:         amount,
		CreditedPoints: points,
		Status:         "confirmed",
		Payload:        datatypes.JSON(raw),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		// Unique index on tx_hash catches a racing duplicate delivery.
		return err
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.Partner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("chat_id = ?", partnerChatID).
			First(&locked).Error; err != nil {
			return err
		}
		locked.DepositBalance += points
		return tx.Save(&locked).Error
	}); err != nil {
		return err
	}

	log.Printf("✅ deposit credited: partner %d, %.2f USDT, %d points (event %s)",
		partnerChatID, amount, points, event.EventID)
	return nil
}
