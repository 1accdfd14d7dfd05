package transaction

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loyalty/config"
	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
	"loyalty/services"
)

var errInsufficient = errors.New("insufficient balance")

var cfg config.Config

// Configure injects the process config once at startup.
func Configure(c config.Config) {
	cfg = c
}

type CreateRequest struct {
	ClientChatID  int64   `json:"client_chat_id"`
	PartnerChatID int64   `json:"partner_chat_id"`
	TxnType       string  `json:"txn_type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	RefID         string  `json:"ref_id"`
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// Create handles POST /transactions: the accrual/spend core path.
//
// Must-succeed steps: the locked balance mutation and the transaction
// row. Follow-on steps (cashback deposit debit, ambassador attribution,
// karma recalc) are best-effort — they are caught and logged, never
// propagated, because the client-visible balance change already landed.
func Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_JSON")
	}

	if req.ClientChatID == 0 || req.PartnerChatID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "CLIENT_AND_PARTNER_REQUIRED")
	}
	if req.TxnType != models.TxnAccrual && req.TxnType != models.TxnSpend {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_TXN_TYPE")
	}
	if !services.ValidAmount(req.Amount, cfg.MaxTxnAmount) {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_AMOUNT")
	}

	if req.RefID != "" {
		var dup int64
		database.DB.Model(&models.Transaction{}).Where("ref_id = ?", req.RefID).Count(&dup)
		if dup > 0 {
			return jsonError(c, fiber.StatusBadRequest, "DUPLICATE_REF_ID")
		}
	}

	var (
		client models.Client
		points int64
	)

	// Balance read and write happen under the same row lock so two racing
	// requests for one client serialize instead of overwriting each other.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("chat_id = ?", req.ClientChatID).
			First(&client).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if req.TxnType == models.TxnSpend {
				return errInsufficient
			}
			client = models.Client{ChatID: req.ClientChatID}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		}

		switch req.TxnType {
		case models.TxnAccrual:
			rate := services.EffectiveCashbackRate(req.PartnerChatID, cfg.DefaultCashbackRate)
			points = services.AccrualPoints(req.Amount, rate)
			client.Balance += points
		case models.TxnSpend:
			points = services.RedemptionPoints(req.Amount)
			if points > client.Balance {
				return errInsufficient
			}
			client.Balance -= points
		}

		return tx.Save(&client).Error
	})
	if err == errInsufficient {
		return jsonError(c, fiber.StatusBadRequest, "INSUFFICIENT_BALANCE")
	}
	if err != nil {
		log.Printf("❌ balance mutation failed (client %d): %v", req.ClientChatID, err)
		return jsonError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
	}

	txn := models.Transaction{
		ClientChatID:  req.ClientChatID,
		PartnerChatID: req.PartnerChatID,
		TxnType:       req.TxnType,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if req.TxnType == models.TxnAccrual {
		txn.EarnedPoints = points
		txn.BalanceBefore = client.Balance - points
	} else {
		txn.SpentPoints = points
		txn.BalanceBefore = client.Balance + points
	}
	txn.BalanceAfter = client.Balance
	refID := req.RefID
	if refID == "" {
		refID = helpers.NewRefID()
	}
	txn.RefID = &refID

	if err := database.DB.Create(&txn).Error; err != nil {
		// No cross-store rollback exists; the balance change stands and
		// the gap is surfaced loudly instead of hidden.
		log.Printf("❌ INCONSISTENCY: balance mutated but transaction row failed (client %d, %s %d points): %v",
			req.ClientChatID, req.TxnType, points, err)
		return jsonError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
	}

	if req.TxnType == models.TxnAccrual && points > 0 {
		if err := services.DebitCashbackDeposit(txn.ID, req.PartnerChatID, req.ClientChatID, points, req.Amount); err != nil {
			log.Printf("⚠️  cashback deposit debit failed (txn %d, partner %d): %v", txn.ID, req.PartnerChatID, err)
		}
		if err := services.AttributeAmbassador(txn.ID, client, req.PartnerChatID, req.Amount); err != nil {
			log.Printf("⚠️  ambassador attribution failed (txn %d): %v", txn.ID, err)
		}
	}

	services.DispatchKarmaRecalc(req.ClientChatID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"new_balance": client.Balance,
		"points":      points,
		"ref_id":      refID,
	})
}
