package services

import (
	"log"

	"loyalty/database"
	"loyalty/models"
)

// DispatchKarmaRecalc fires the karma recomputation without awaiting it.
// Failures are swallowed: karma is a derived score and must never affect
// the request that triggered it.
func DispatchKarmaRecalc(clientChatID int64) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️  karma recalc panic for client %d: %v", clientChatID, r)
			}
		}()
		if err := recalcKarma(clientChatID); err != nil {
			log.Printf("⚠️  karma recalc failed for client %d: %v", clientChatID, err)
		}
	}()
}

func recalcKarma(clientChatID int64) error {
	var accruals, spends int64
	if err := database.DB.Model(&models.Transaction{}).
		Where("client_chat_id = ? AND txn_type = ?", clientChatID, models.TxnAccrual).
		Count(&accruals).Error; err != nil {
		return err
	}
	if err := database.DB.Model(&models.Transaction{}).
		Where("client_chat_id = ? AND txn_type = ?", clientChatID, models.TxnSpend).
		Count(&spends).Error; err != nil {
		return err
	}

	karma := float64(accruals*2 + spends)
	if karma > 100 {
		karma = 100
	}

	return database.DB.Model(&models.Client{}).
		Where("chat_id = ?", clientChatID).
		Update("karma", karma).Error
}
