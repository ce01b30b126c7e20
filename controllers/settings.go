// controllers/settings.go
//
// CRUD for the salon-level configuration tables the billing form depends
// on: tax groups, payment modes and membership plans.
package controllers

import (
	"net/http"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func salonFromContext(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

// --- Tax groups ---

type TaxGroupInput struct {
	Name        string          `json:"name" binding:"required"`
	CGSTPercent decimal.Decimal `json:"cgstPercent"`
	SGSTPercent decimal.Decimal `json:"sgstPercent"`
	IGSTPercent decimal.Decimal `json:"igstPercent"`
}

func CreateTaxGroup(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input TaxGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CGSTPercent.IsNegative() || input.SGSTPercent.IsNegative() || input.IGSTPercent.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Tax percentages cannot be negative")
		return
	}

	group := models.TaxGroup{
		SalonID:     salonUUID,
		Name:        input.Name,
		CGSTPercent: input.CGSTPercent,
		SGSTPercent: input.SGSTPercent,
		IGSTPercent: input.IGSTPercent,
		IsActive:    true,
	}
	if err := config.DB.Create(&group).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tax group")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func GetTaxGroups(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var groups []models.TaxGroup
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		Order("name ASC").Find(&groups).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tax groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func UpdateTaxGroup(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	groupUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tax group ID format")
		return
	}

	var input TaxGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CGSTPercent.IsNegative() || input.SGSTPercent.IsNegative() || input.IGSTPercent.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Tax percentages cannot be negative")
		return
	}

	var group models.TaxGroup
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, groupUUID).
		First(&group).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tax group not found")
		return
	}

	group.Name = input.Name
	group.CGSTPercent = input.CGSTPercent
	group.SGSTPercent = input.SGSTPercent
	group.IGSTPercent = input.IGSTPercent

	if err := config.DB.Save(&group).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tax group")
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteTaxGroup deactivates a tax row. Catalog entries that still point
// at it fall back to their stored flat rate during billing.
func DeleteTaxGroup(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	groupUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tax group ID format")
		return
	}

	result := config.DB.Model(&models.TaxGroup{}).
		Where("salon_id = ? AND id = ?", salonUUID, groupUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tax group")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tax group not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tax group deleted successfully"})
}

// --- Payment modes ---

type PaymentModeInput struct {
	Name string `json:"name" binding:"required"`
}

func CreatePaymentMode(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input PaymentModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	mode := models.PaymentMode{SalonID: salonUUID, Name: input.Name, IsActive: true}
	if err := config.DB.Create(&mode).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment mode")
		return
	}
	c.JSON(http.StatusCreated, mode)
}

func GetPaymentModes(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var modes []models.PaymentMode
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		Order("created_at ASC").Find(&modes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment modes")
		return
	}
	c.JSON(http.StatusOK, modes)
}

func DeletePaymentMode(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	modeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment mode ID format")
		return
	}

	result := config.DB.Model(&models.PaymentMode{}).
		Where("salon_id = ? AND id = ?", salonUUID, modeUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment mode")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment mode not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment mode deleted successfully"})
}

// --- Membership plans ---

type MembershipInput struct {
	Name            string          `json:"name" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DurationDays    int             `json:"durationDays" binding:"min=1"`
	Price           decimal.Decimal `json:"price"`
}

func CreateMembership(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input MembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount percent must be between 0 and 100")
		return
	}

	membership := models.Membership{
		SalonID:         salonUUID,
		Name:            input.Name,
		DiscountPercent: input.DiscountPercent,
		DurationDays:    input.DurationDays,
		Price:           input.Price,
		IsActive:        true,
	}
	if err := config.DB.Create(&membership).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create membership")
		return
	}
	c.JSON(http.StatusCreated, membership)
}

func GetMemberships(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var memberships []models.Membership
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		Order("name ASC").Find(&memberships).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve memberships")
		return
	}
	c.JSON(http.StatusOK, memberships)
}

func UpdateMembership(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	membershipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID format")
		return
	}

	var input MembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount percent must be between 0 and 100")
		return
	}

	var membership models.Membership
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, membershipUUID).
		First(&membership).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Membership not found")
		return
	}

	membership.Name = input.Name
	membership.DiscountPercent = input.DiscountPercent
	membership.DurationDays = input.DurationDays
	membership.Price = input.Price

	if err := config.DB.Save(&membership).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update membership")
		return
	}
	c.JSON(http.StatusOK, membership)
}

func DeleteMembership(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	membershipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID format")
		return
	}

	result := config.DB.Model(&models.Membership{}).
		Where("salon_id = ? AND id = ?", salonUUID, membershipUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete membership")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Membership not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership deleted successfully"})
}
