package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OnChainPayment mirrors one confirmed stablecoin deposit. TxHash is the
// provider's event id and doubles as the idempotency key.
type OnChainPayment struct {
	gorm.Model

	TxHash         string  `gorm:"size:128;uniqueIndex" json:"tx_hash"`
	PartnerChatID  int64   `gorm:"index" json:"partner_chat_id"`
	Amount         float64 `json:"amount"`
	CreditedPoints int64   `json:"credited_points"`
	Status         string  `gorm:"size:16" json:"status"`

	Payload datatypes.JSON `json:"payload,omitempty"`
}
