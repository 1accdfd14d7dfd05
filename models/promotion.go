package models

import (
	"time"

	"gorm.io/gorm"
)

type Promotion struct {
	gorm.Model

	Title         string    `gorm:"size:128" json:"title"`
	PartnerChatID int64     `gorm:"index" json:"partner_chat_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`

	// Maximum currency value payable with points; 0 disables points payment.
	MaxPointsPayment   int64   `json:"max_points_payment"`
	PointsToDollarRate float64 `gorm:"default:1" json:"points_to_dollar_rate"`
	ServicePrice       float64 `json:"service_price"`
}

func (p *Promotion) ActiveOn(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
