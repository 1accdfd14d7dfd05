package models

import "gorm.io/gorm"

const (
	TxnAccrual = "accrual"
	TxnSpend   = "spend"
)

// Transaction is the immutable client-facing ledger row. It is never
// updated after creation except to attach a deferred ambassador
// attribution.
type Transaction struct {
	gorm.Model

	ClientChatID  int64   `gorm:"index" json:"client_chat_id"`
	PartnerChatID int64   `gorm:"index" json:"partner_chat_id"`
	TxnType       string  `gorm:"size:16;index" json:"txn_type"`
	Amount        float64 `json:"amount"`
	EarnedPoints  int64   `json:"earned_points"`
	SpentPoints   int64   `json:"spent_points"`
	BalanceBefore int64   `json:"balance_before"`
	BalanceAfter  int64   `json:"balance_after"`
	Description   string  `gorm:"size:255" json:"description"`

	// Optional caller-supplied dedupe token.
	RefID *string `gorm:"size:64;uniqueIndex" json:"ref_id,omitempty"`

	AmbassadorID *uint `gorm:"index" json:"ambassador_id,omitempty"`
}
