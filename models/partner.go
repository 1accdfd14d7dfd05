package models

import "gorm.io/gorm"

type Partner struct {
	gorm.Model

	ChatID int64  `gorm:"uniqueIndex" json:"chat_id"`
	Name   string `gorm:"size:128" json:"name"`

	// Fraction of the raw check amount issued as cashback points.
	CashbackRate float64 `gorm:"default:0.05" json:"cashback_rate"`

	// Prepaid deposit drawn down on every cashback issue. May go negative:
	// an exhausted deposit is a dashboard signal, not a stop on issuing
	// cashback already promised to the client.
	DepositBalance      int64 `json:"deposit_balance"`
	TotalCashbackIssued int64 `json:"total_cashback_issued"`

	// Fraction of the check amount paid out as referral commission.
	AmbassadorCommission float64 `gorm:"default:0" json:"ambassador_commission"`
}
