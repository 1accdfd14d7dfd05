package partner

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
)

var (
	errInvalidPeriod = errors.New("invalid period")
	gormSession      = gorm.Session{}
)

type dayStat struct {
	Day     string `json:"day"`
	Points  int64  `json:"points"`
	Entries int64  `json:"entries"`
}

// CashbackStats handles GET /partners/:id/cashback-stats with either
// period=7d|30d|all or explicit from/to date bounds (YYYY-MM-DD).
func CashbackStats(c *fiber.Ctx) error {
	partnerChatID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, "INVALID_PARTNER_ID")
	}

	var partner models.Partner
	if err := database.DB.Where("chat_id = ?", partnerChatID).First(&partner).Error; err != nil {
		return helpers.JSONNotFound(c, "PARTNER_NOT_FOUND")
	}

	from, to, err := parseRange(c)
	if err != nil {
		return helpers.JSONError(c, "INVALID_PERIOD")
	}

	query := database.DB.Model(&models.CashbackLogEntry{}).
		Where("partner_chat_id = ?", partnerChatID)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	var totals struct {
		TotalPoints  int64
		TotalEntries int64
	}
	if err := query.Session(&gormSession).
		Select("COALESCE(SUM(cashback_points),0) AS total_points, COUNT(*) AS total_entries").
		Scan(&totals).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_AGGREGATE")
	}

	var series []dayStat
	if err := query.Session(&gormSession).
		Select("DATE(created_at) AS day, SUM(cashback_points) AS points, COUNT(*) AS entries").
		Group("DATE(created_at)").
		Order("day").
		Scan(&series).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_AGGREGATE")
	}

	return helpers.JSONSuccess(c, "Cashback stats", fiber.Map{
		"partner_chat_id":       partnerChatID,
		"deposit_balance":       partner.DepositBalance,
		"total_cashback_issued": partner.TotalCashbackIssued,
		"total_points":          totals.TotalPoints,
		"total_entries":         totals.TotalEntries,
		"per_day":               series,
	})
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to := time.Time{}
		if toStr := c.Query("to"); toStr != "" {
			parsed, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			to = parsed.AddDate(0, 0, 1)
		}
		return from, to, nil
	}

	switch c.Query("period", "30d") {
	case "7d":
		return time.Now().AddDate(0, 0, -7), time.Time{}, nil
	case "30d":
		return time.Now().AddDate(0, 0, -30), time.Time{}, nil
	case "all":
		return time.Time{}, time.Time{}, nil
	}
	return time.Time{}, time.Time{}, errInvalidPeriod
}
