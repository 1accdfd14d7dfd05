package ambassador

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"loyalty/database"
	"loyalty/helpers"
	"loyalty/models"
)

type LinkRequest struct {
	AmbassadorChatID int64 `json:"ambassador_chat_id"`
	PartnerChatID    int64 `json:"partner_chat_id"`
}

type linkCheck struct {
	ambassador models.Ambassador
	canAdd     bool
	reason     string
	message    string
}

func checkLink(req LinkRequest) (linkCheck, error) {
	var res linkCheck

	if err := database.DB.Where("chat_id = ?", req.AmbassadorChatID).
		First(&res.ambassador).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			res.reason = "ambassador_not_found"
			res.message = "Ambassador is not registered"
			return res, nil
		}
		return res, err
	}

	var partnerCount int64
	if err := database.DB.Model(&models.Partner{}).
		Where("chat_id = ?", req.PartnerChatID).
		Count(&partnerCount).Error; err != nil {
		return res, err
	}
	if partnerCount == 0 {
		res.reason = "partner_not_found"
		res.message = "Partner is not registered"
		return res, nil
	}

	var existing int64
	if err := database.DB.Model(&models.AmbassadorPartnerLink{}).
		Where("ambassador_id = ? AND partner_chat_id = ?", res.ambassador.ID, req.PartnerChatID).
		Count(&existing).Error; err != nil {
		return res, err
	}
	if existing > 0 {
		res.reason = "already_linked"
		res.message = "This partner is already linked"
		return res, nil
	}

	var linked int64
	if err := database.DB.Model(&models.AmbassadorPartnerLink{}).
		Where("ambassador_id = ?", res.ambassador.ID).
		Count(&linked).Error; err != nil {
		return res, err
	}
	if linked >= int64(res.ambassador.MaxPartners) {
		res.reason = "max_partners_reached"
		res.message = "Partner slot limit reached"
		return res, nil
	}

	res.canAdd = true
	res.message = "Partner can be added"
	return res, nil
}

// CanAddPartner handles POST /api/ambassador/can-add-partner.
func CanAddPartner(c *fiber.Ctx) error {
	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.AmbassadorChatID == 0 || req.PartnerChatID == 0 {
		return helpers.JSONError(c, "AMBASSADOR_AND_PARTNER_REQUIRED")
	}

	res, err := checkLink(req)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_CHECK_LINK")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"canAdd":  res.canAdd,
		"reason":  res.reason,
		"message": res.message,
	})
}

// AddPartner handles POST /api/ambassador/add-partner. The unique pair
// index backs up the eligibility check, so a racing duplicate insert
// still cannot create a second link.
func AddPartner(c *fiber.Ctx) error {
	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.AmbassadorChatID == 0 || req.PartnerChatID == 0 {
		return helpers.JSONError(c, "AMBASSADOR_AND_PARTNER_REQUIRED")
	}

	res, err := checkLink(req)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_CHECK_LINK")
	}
	if !res.canAdd {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"canAdd":  false,
			"reason":  res.reason,
			"message": res.message,
		})
	}

	link := models.AmbassadorPartnerLink{
		AmbassadorID:  res.ambassador.ID,
		PartnerChatID: req.PartnerChatID,
	}
	if err := database.DB.Create(&link).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_LINK")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"canAdd":  true,
		"reason":  "",
		"message": "Partner linked successfully",
	})
}
