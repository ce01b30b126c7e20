// controllers/profile.go
package controllers

import (
	"net/http"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
)

type SalonProfileInput struct {
	SalonName    string       `json:"salonName" binding:"required"`
	SalonAddress string       `json:"salonAddress"`
	GSTIN        string       `json:"gstin"`
	Phone        string       `json:"phone"`
	WorkingHours models.JSONB `json:"workingHours"`
}

// UpdateSalonProfile edits the owner's salon details printed on invoices.
func UpdateSalonProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input SalonProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateGSTIN(input.GSTIN) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid GSTIN format")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID.(string)).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	user.SalonName = input.SalonName
	user.SalonAddress = input.SalonAddress
	user.GSTIN = input.GSTIN
	user.Phone = input.Phone
	if input.WorkingHours != nil {
		user.WorkingHours = input.WorkingHours
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salonName":    user.SalonName,
		"salonAddress": user.SalonAddress,
		"gstin":        user.GSTIN,
		"phone":        user.Phone,
		"workingHours": user.WorkingHours,
	})
}

type NotificationSettingsInput struct {
	PaymentReminders      *bool `json:"paymentReminders"`
	MembershipReminders   *bool `json:"membershipReminders"`
	WhatsAppNotifications *bool `json:"whatsappNotifications"`
	SMSNotifications      *bool `json:"smsNotifications"`
}

// UpdateNotificationSettings toggles the reminder channels the scheduler
// honors.
func UpdateNotificationSettings(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input NotificationSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.PaymentReminders != nil {
		updates["payment_reminders"] = *input.PaymentReminders
	}
	if input.MembershipReminders != nil {
		updates["membership_reminders"] = *input.MembershipReminders
	}
	if input.WhatsAppNotifications != nil {
		updates["whats_app_notifications"] = *input.WhatsAppNotifications
	}
	if input.SMSNotifications != nil {
		updates["sms_notifications"] = *input.SMSNotifications
	}
	if len(updates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No settings provided")
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", userID.(string)).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
