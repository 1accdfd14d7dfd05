package services

import (
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loyalty/database"
	"loyalty/models"
)

// Referral source tags carrying this prefix mark clients brought in by an
// ambassador; the suffix is the ambassador's chat id.
const AmbassadorRefPrefix = "amb_"

var platformFeeRate = decimal.NewFromFloat(0.30)

// AttributeAmbassador runs after a successful accrual. It walks four
// gates, short-circuiting at the first negative, and on success records
// the commission split, bumps the ambassador's balances, and patches the
// transaction with the attribution.
//
// The writes are independent calls with no shared lock; partial
// completion is logged by the caller, never rolled back.
func AttributeAmbassador(txnID uint, client models.Client, partnerChatID int64, checkAmount float64) error {
	// Gate 1: referral source must carry the ambassador marker.
	if !strings.HasPrefix(client.ReferralSource, AmbassadorRefPrefix) {
		return nil
	}

	// Gate 2: the marker must resolve to a known ambassador.
	ambChatID, err := strconv.ParseInt(strings.TrimPrefix(client.ReferralSource, AmbassadorRefPrefix), 10, 64)
	if err != nil {
		return nil
	}
	var amb models.Ambassador
	if err := database.DB.Where("chat_id = ?", ambChatID).First(&amb).Error; err != nil {
		return nil
	}

	// Gate 3: the ambassador must actually promote this partner, so
	// unrelated partner traffic never generates commission.
	var link models.AmbassadorPartnerLink
	if err := database.DB.Where("ambassador_id = ? AND partner_chat_id = ?", amb.ID, partnerChatID).
		First(&link).Error; err != nil {
		return nil
	}

	// Gate 4: the partner must pay a commission at all.
	var partner models.Partner
	if err := database.DB.Where("chat_id = ?", partnerChatID).First(&partner).Error; err != nil {
		return err
	}
	if partner.AmbassadorCommission <= 0 {
		return nil
	}

	gross := decimal.NewFromFloat(checkAmount).
		Mul(decimal.NewFromFloat(partner.AmbassadorCommission)).
		Round(2)
	fee := gross.Mul(platformFeeRate).Round(2)
	ambAmount := gross.Sub(fee)

	earning := models.AmbassadorEarning{
		AmbassadorID:     amb.ID,
		TransactionID:    txnID,
		PartnerChatID:    partnerChatID,
		GrossAmount:      gross,
		PlatformFee:      fee,
		AmbassadorAmount: ambAmount,
	}
	if err := database.DB.Create(&earning).Error; err != nil {
		return err
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.Ambassador
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, amb.ID).Error; err != nil {
			return err
		}
		locked.PendingBalance = locked.PendingBalance.Add(ambAmount)
		locked.TotalEarnings = locked.TotalEarnings.Add(ambAmount)
		return tx.Save(&locked).Error
	}); err != nil {
		return err
	}

	// Earning and balances are already committed; a failed attribution
	// patch leaves the transaction unattributed, which is tolerated.
	if err := database.DB.Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Update("ambassador_id", amb.ID).Error; err != nil {
		log.Printf("⚠️  txn %d: earning recorded but attribution patch failed: %v", txnID, err)
	}

	return nil
}
