// controllers/reminder.go
package controllers

import (
	"net/http"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReminderTemplateInput struct {
	Type    string `json:"type" binding:"required,oneof=payment_due membership_expiry"`
	Message string `json:"message" binding:"required"`
}

// CreateReminderTemplate saves a message template. Placeholders like
// {customer_name} and {amount} are substituted when the scheduler sends.
func CreateReminderTemplate(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input ReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.ReminderTemplate{
		SalonID:  salonUUID,
		Type:     input.Type,
		Message:  input.Message,
		IsActive: true,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetReminderTemplates lists the salon's templates.
func GetReminderTemplates(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var templates []models.ReminderTemplate
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonUUID).
		Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// UpdateReminderTemplate edits a template's message.
func UpdateReminderTemplate(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input ReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, templateUUID).
		First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	template.Type = input.Type
	template.Message = input.Message
	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteReminderTemplate deactivates a template.
func DeleteReminderTemplate(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	result := config.DB.Model(&models.ReminderTemplate{}).
		Where("salon_id = ? AND id = ?", salonUUID, templateUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// GetReminderLogs lists recently sent reminders.
func GetReminderLogs(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var logs []models.ReminderLog
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("sent_at DESC").Limit(100).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
