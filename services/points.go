package services

import (
	"math"

	"loyalty/database"
	"loyalty/models"
)

// AccrualPoints derives cashback points from a raw check amount.
func AccrualPoints(amount, rate float64) int64 {
	return int64(math.Floor(amount * rate))
}

// RedemptionPoints derives the point cost of a spend request.
func RedemptionPoints(amount float64) int64 {
	return int64(math.Floor(amount))
}

// EffectiveCashbackRate returns the partner's cashback rate, falling back
// to the default when the partner is unknown or carries no rate. An
// accrual is never blocked because the rate lookup failed.
func EffectiveCashbackRate(partnerChatID int64, fallback float64) float64 {
	var partner models.Partner
	if err := database.DB.Where("chat_id = ?", partnerChatID).First(&partner).Error; err != nil {
		return fallback
	}
	if partner.CashbackRate <= 0 {
		return fallback
	}
	return partner.CashbackRate
}

// ValidAmount rejects non-finite, non-positive, and over-ceiling amounts.
func ValidAmount(amount, ceiling float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount > 0 && amount <= ceiling
}
