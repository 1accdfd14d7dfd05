package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loyalty/database"
	"loyalty/models"
)

// DebitCashbackDeposit draws the issued cashback down from the partner's
// prepaid deposit and appends the audit log row. The deposit is allowed
// to go negative: the cashback was already promised to the client, an
// exhausted deposit only flags the partner dashboard.
//
// Best-effort relative to the client-facing ledger — the caller logs a
// failure and never rolls back the committed balance/transaction.
func DebitCashbackDeposit(txnID uint, partnerChatID, clientChatID, cashbackPoints int64, checkAmount float64) error {
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("chat_id = ?", partnerChatID).
			First(&partner).Error; err != nil {
			return err
		}

		partner.DepositBalance -= cashbackPoints
		partner.TotalCashbackIssued += cashbackPoints
		return tx.Save(&partner).Error
	}); err != nil {
		return err
	}

	return database.DB.Create(&models.CashbackLogEntry{
		TransactionID:  txnID,
		PartnerChatID:  partnerChatID,
		ClientChatID:   clientChatID,
		CashbackPoints: cashbackPoints,
		CheckAmount:    checkAmount,
	}).Error
}
