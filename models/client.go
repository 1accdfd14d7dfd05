package models

import "gorm.io/gorm"

type Client struct {
	gorm.Model

	ChatID         int64   `gorm:"uniqueIndex" json:"chat_id"`
	Balance        int64   `json:"balance"`
	ReferralSource string  `gorm:"size:64;index" json:"referral_source"`
	Karma          float64 `json:"karma"`

	Transactions []Transaction `gorm:"foreignKey:ClientChatID;references:ChatID"`
}
