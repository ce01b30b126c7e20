// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	SalonName    string `json:"salonName" binding:"required"`
	SalonAddress string `json:"salonAddress"`
	GSTIN        string `json:"gstin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an owner account. The new user's ID becomes the salon
// ID used across the schema.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidateGSTIN(input.GSTIN) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid GSTIN format")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	}

	user := models.User{
		Email:        input.Email,
		Password:     input.Password,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         "owner",
		SalonName:    input.SalonName,
		SalonAddress: input.SalonAddress,
		GSTIN:        input.GSTIN,
		IsActive:     true,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// Seed default payment modes so billing works out of the box.
	for _, name := range []string{"Cash", "Card", "UPI"} {
		config.DB.Create(&models.PaymentMode{SalonID: user.ID, Name: name, IsActive: true})
	}

	token, err := utils.GenerateToken(user.ID.String(), user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"salonName": user.SalonName,
		},
	})
}

// Login authenticates a user and issues a JWT scoped to their salon.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND is_active = true", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", now)

	token, err := utils.GenerateToken(user.ID.String(), user.ID.String(), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"salonName": user.SalonName,
		},
	})
}

// GetMe returns the authenticated user's profile.
func GetMe(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID.(string)).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  user.ID,
		"email":               user.Email,
		"name":                user.Name,
		"phone":               user.Phone,
		"role":                user.Role,
		"salonName":           user.SalonName,
		"salonAddress":        user.SalonAddress,
		"gstin":               user.GSTIN,
		"workingHours":        user.WorkingHours,
		"paymentReminders":    user.PaymentReminders,
		"membershipReminders": user.MembershipReminders,
	})
}
