package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Ambassador struct {
	gorm.Model

	ChatID         int64           `gorm:"uniqueIndex" json:"chat_id"`
	PendingBalance decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"pending_balance"`
	TotalEarnings  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_earnings"`
	MaxPartners    int             `gorm:"default:5" json:"max_partners"`
}

// AmbassadorPartnerLink pairs an ambassador with a partner they are
// permitted to promote. Created once per pair, never duplicated.
type AmbassadorPartnerLink struct {
	gorm.Model

	AmbassadorID  uint  `gorm:"index:idx_amb_partner,unique" json:"ambassador_id"`
	PartnerChatID int64 `gorm:"index:idx_amb_partner,unique" json:"partner_chat_id"`
}

// AmbassadorEarning records one commission split, linked to exactly one
// transaction.
type AmbassadorEarning struct {
	gorm.Model

	AmbassadorID  uint  `gorm:"index" json:"ambassador_id"`
	TransactionID uint  `gorm:"uniqueIndex" json:"transaction_id"`
	PartnerChatID int64 `gorm:"index" json:"partner_chat_id"`

	GrossAmount      decimal.Decimal `gorm:"type:numeric(12,2)" json:"gross_amount"`
	PlatformFee      decimal.Decimal `gorm:"type:numeric(12,2)" json:"platform_fee"`
	AmbassadorAmount decimal.Decimal `gorm:"type:numeric(12,2)" json:"ambassador_amount"`
}
