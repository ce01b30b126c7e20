// controllers/package.go
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

type PackageItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
}

type PackageInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	BasePrice   decimal.Decimal    `json:"basePrice"`
	TaxGroupID  *uuid.UUID         `json:"taxGroupId"`
	Items       []PackageItemInput `json:"items" binding:"required,min=1"`
}

// CreatePackage adds a service bundle to the catalog.
func CreatePackage(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.BasePrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Base price cannot be negative")
		return
	}

	// Every included service must belong to this salon.
	serviceIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}
	var count int64
	config.DB.Model(&models.Service{}).
		Where("salon_id = ? AND id IN ?", salonUUID, serviceIDs).Count(&count)
	if int(count) != len(serviceIDs) {
		utils.RespondWithError(c, http.StatusBadRequest, "One or more services not found")
		return
	}

	pkg := models.Package{
		SalonID:     salonUUID,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		TaxGroupID:  input.TaxGroupID,
		IsActive:    true,
	}
	for _, item := range input.Items {
		pkg.Items = append(pkg.Items, models.PackageItem{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	if err := config.DB.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create package")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// GetPackages lists active packages with their included services.
func GetPackages(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	var packages []models.Package
	if err := config.DB.Preload("Items").
		Where("salon_id = ? AND is_active = true", salonUUID).
		Order("name ASC").Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

// UpdatePackage modifies a package and replaces its item list.
func UpdatePackage(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.BasePrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Base price cannot be negative")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var pkg models.Package
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, packageUUID).
		First(&pkg).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package items")
		return
	}

	pkg.Name = input.Name
	pkg.Description = input.Description
	pkg.BasePrice = input.BasePrice
	pkg.TaxGroupID = input.TaxGroupID
	pkg.Items = nil
	for _, item := range input.Items {
		pkg.Items = append(pkg.Items, models.PackageItem{
			PackageID: pkg.ID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	if err := tx.Save(&pkg).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package")
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, pkg)
}

// DeletePackage soft-deactivates a package.
func DeletePackage(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	result := config.DB.Model(&models.Package{}).
		Where("salon_id = ? AND id = ?", salonUUID, packageUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
