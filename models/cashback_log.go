package models

import "gorm.io/gorm"

// CashbackLogEntry is the append-only audit trail of partner deposit
// debits, independent of the Transaction table.
type CashbackLogEntry struct {
	gorm.Model

	TransactionID  uint    `gorm:"index" json:"transaction_id"`
	PartnerChatID  int64   `gorm:"index" json:"partner_chat_id"`
	ClientChatID   int64   `gorm:"index" json:"client_chat_id"`
	CashbackPoints int64   `json:"cashback_points"`
	CheckAmount    float64 `json:"check_amount"`
}
