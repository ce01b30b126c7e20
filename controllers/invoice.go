// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonbill-backend/billing"
	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StaffSlotInput is one staff slot on a billing line.
type StaffSlotInput struct {
	StaffID uuid.UUID `json:"staffId"`
}

// LineItemInput is one editable row of the billing form as posted by the
// client. BasePrice is omitted (null) when the cashier has overridden the
// unit price by hand.
type LineItemInput struct {
	CatalogID       uuid.UUID        `json:"catalogId" binding:"required"`
	Category        string           `json:"category" binding:"required,oneof=service package product"`
	Name            string           `json:"name" binding:"required"`
	Quantity        int              `json:"quantity" binding:"min=0"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	BasePrice       *decimal.Decimal `json:"basePrice"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	TaxGroupID      *uuid.UUID       `json:"taxGroupId"`
	TaxRatePercent  decimal.Decimal  `json:"taxRatePercent"`
	Staff           []StaffSlotInput `json:"staff"`
}

// PaymentInput is one payment-mode entry.
type PaymentInput struct {
	PaymentModeID uuid.UUID       `json:"paymentModeId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// LockedTaxInput carries an external tax summary that overrides per-line
// tax computation (used for appointment-sourced invoices whose prices
// already embed tax).
type LockedTaxInput struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	Total decimal.Decimal `json:"total"`
}

// InvoiceStateInput is the full billing-form state. Preview, create and
// update all consume the same shape; the server recomputes everything
// from it and never trusts client-side totals.
type InvoiceStateInput struct {
	CustomerID        uuid.UUID       `json:"customerId" binding:"required"`
	InvoiceDate       *time.Time      `json:"invoiceDate"`
	Lines             []LineItemInput `json:"lines" binding:"required,min=1"`
	DiscountInput     string          `json:"discountInput"`
	DiscountType      string          `json:"discountType" binding:"omitempty,oneof=percent fixed"`
	MembershipApplied bool            `json:"membershipApplied"`
	ExemptAll         bool            `json:"exemptAll"`
	ExemptPackages    bool            `json:"exemptPackages"`
	ExemptProducts    bool            `json:"exemptProducts"`
	LockedTax         *LockedTaxInput `json:"lockedTax"`
	Payments          []PaymentInput  `json:"payments"`
	CreditAmount      decimal.Decimal `json:"creditAmount"`
	CreditConfirmed   bool            `json:"creditConfirmed"`
	Status            string          `json:"status" binding:"omitempty,oneof=active hold"`
	Notes             string          `json:"notes"`
}

// loadCatalogs snapshots the tax table, staff rates and payment modes the
// engine and the persistence mapping need.
func loadCatalogs(salonID uuid.UUID) (billing.Catalogs, map[uuid.UUID]models.Employee, map[uuid.UUID]models.PaymentMode, error) {
	cat := billing.Catalogs{
		TaxGroups:  make(map[uuid.UUID]billing.TaxGroup),
		StaffRates: make(map[uuid.UUID]billing.StaffRate),
	}

	var taxGroups []models.TaxGroup
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonID).Find(&taxGroups).Error; err != nil {
		return cat, nil, nil, err
	}
	for _, g := range taxGroups {
		cat.TaxGroups[g.ID] = billing.TaxGroup{
			CGSTPercent: g.CGSTPercent,
			SGSTPercent: g.SGSTPercent,
			IGSTPercent: g.IGSTPercent,
		}
	}

	var employees []models.Employee
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonID).Find(&employees).Error; err != nil {
		return cat, nil, nil, err
	}
	staff := make(map[uuid.UUID]models.Employee, len(employees))
	for _, e := range employees {
		staff[e.ID] = e
		cat.StaffRates[e.ID] = billing.StaffRate{
			DisplayName:   e.Name,
			SkillLevel:    e.SkillLevel,
			MarkupPercent: e.MarkupPercent,
			FixedMarkup:   e.FixedMarkup,
		}
	}

	var paymentModes []models.PaymentMode
	if err := config.DB.Where("salon_id = ? AND is_active = true", salonID).Find(&paymentModes).Error; err != nil {
		return cat, nil, nil, err
	}
	modes := make(map[uuid.UUID]models.PaymentMode, len(paymentModes))
	for _, m := range paymentModes {
		modes[m.ID] = m
	}

	return cat, staff, modes, nil
}

// membershipPercentFor resolves the customer's membership discount, zero
// when there is no membership or it has expired.
func membershipPercentFor(customer models.Customer) (decimal.Decimal, *uuid.UUID) {
	if customer.MembershipID == nil {
		return decimal.Zero, nil
	}
	if customer.MembershipExpiry != nil && customer.MembershipExpiry.Before(time.Now()) {
		return decimal.Zero, nil
	}
	var membership models.Membership
	if err := config.DB.First(&membership, "id = ? AND is_active = true", *customer.MembershipID).Error; err != nil {
		return decimal.Zero, nil
	}
	return membership.DiscountPercent, customer.MembershipID
}

// toEngineState maps the posted form state into the engine's input,
// resolving staff display names and the customer's membership percent.
func toEngineState(input InvoiceStateInput, customer models.Customer, staff map[uuid.UUID]models.Employee, modes map[uuid.UUID]models.PaymentMode) (billing.InvoiceState, *uuid.UUID) {
	state := billing.InvoiceState{
		DiscountInput:     input.DiscountInput,
		DiscountType:      billing.DiscountType(input.DiscountType),
		MembershipApplied: input.MembershipApplied,
		Exemptions: billing.Exemptions{
			All:      input.ExemptAll,
			Packages: input.ExemptPackages,
			Products: input.ExemptProducts,
		},
		CreditAmount:    input.CreditAmount,
		CreditConfirmed: input.CreditConfirmed,
	}
	if state.DiscountType == "" {
		state.DiscountType = billing.DiscountTypePercent
	}

	percent, membershipID := membershipPercentFor(customer)
	state.MembershipPercent = percent

	if input.LockedTax != nil {
		state.LockedTax = &billing.LockedTaxSummary{
			CGST:  input.LockedTax.CGST,
			SGST:  input.LockedTax.SGST,
			Total: input.LockedTax.Total,
		}
	}

	for _, li := range input.Lines {
		line := billing.LineItem{
			ID:              uuid.New(),
			CatalogID:       li.CatalogID,
			Name:            li.Name,
			Category:        billing.Category(li.Category),
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			BasePrice:       li.BasePrice,
			DiscountPercent: li.DiscountPercent,
			TaxRatePercent:  li.TaxRatePercent,
		}
		if li.TaxGroupID != nil {
			line.TaxGroupID = *li.TaxGroupID
		}
		for _, slot := range li.Staff {
			sa := billing.StaffAssignment{StaffID: slot.StaffID}
			if e, ok := staff[slot.StaffID]; ok {
				sa.StaffName = e.Name
			}
			line.StaffAssignments = append(line.StaffAssignments, sa)
		}
		state.Lines = append(state.Lines, line)
	}

	for _, p := range input.Payments {
		entry := billing.PaymentEntry{ModeID: p.PaymentModeID, Amount: p.Amount}
		if m, ok := modes[p.PaymentModeID]; ok {
			entry.Name = m.Name
		}
		state.Payments = append(state.Payments, entry)
	}

	return state, membershipID
}

// PreviewInvoice recomputes the breakdown for the current form state
// without persisting anything. The client calls this on every edit.
func PreviewInvoice(c *gin.Context) {
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

	var input InvoiceStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	cat, staff, modes, err := loadCatalogs(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load catalogs")
		return
	}

	state, _ := toEngineState(input, customer, staff, modes)
	result := billing.Recompute(state, cat)

	c.JSON(http.StatusOK, gin.H{
		"lines":      result.Lines,
		"summary":    result.Summary,
		"validation": result.Validation,
	})
}

// CreateInvoice recomputes the posted form state server-side and persists
// the result as expanded unit records plus payment rows. A held invoice
// skips finalization checks and customer-stat updates; an active one must
// pass engine validation.
func CreateInvoice(c *gin.Context) {
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

	userID, _ := c.Get("userId")
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input InvoiceStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}

	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	cat, staff, modes, err := loadCatalogs(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load catalogs")
		return
	}

	state, membershipID := toEngineState(input, customer, staff, modes)
	result := billing.Recompute(state, cat)

	if input.Status == "active" && !result.Validation.CanFinalize() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Invoice cannot be finalized",
			"validation": result.Validation,
		})
		return
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice := models.Invoice{
		ID:                 uuid.New(),
		SalonID:            salonUUID,
		CreatedByUserID:    userUUID,
		CustomerID:         input.CustomerID,
		InvoiceDate:        invoiceDate,
		Status:             input.Status,
		DiscountInput:      input.DiscountInput,
		DiscountType:       string(state.DiscountType),
		MembershipID:       membershipID,
		MembershipPercent:  state.MembershipPercent,
		MembershipApplied:  state.MembershipApplied,
		ExemptAll:          input.ExemptAll,
		ExemptPackages:     input.ExemptPackages,
		ExemptProducts:     input.ExemptProducts,
		Subtotal:           result.Summary.Subtotal,
		MembershipDiscount: result.Summary.MembershipDiscount,
		AdditionalDiscount: result.Summary.AdditionalDiscount,
		TaxableAmount:      result.Summary.TaxableAmount,
		CGSTAmount:         result.Summary.CGSTTotal,
		SGSTAmount:         result.Summary.SGSTTotal,
		IGSTAmount:         result.Summary.IGSTTotal,
		TaxAmount:          result.Summary.TaxAmount,
		RoundOff:           result.Summary.RoundOff,
		GrandTotal:         result.Summary.GrandTotal,
		CreditAmount:       state.CreditAmount,
		Notes:              input.Notes,
		Items:              invoiceItemsFromUnits(result.ExpandForPersistence()),
		Payments:           invoicePaymentsFromState(state.Payments),
	}
	invoice.InvoiceNumber = "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	if invoice.Status == "active" {
		if err := applyCustomerStats(tx, invoice, 1); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
		if err := adjustProductStock(tx, salonUUID, result.Lines, -1); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product stock")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"invoice":    invoice,
		"summary":    result.Summary,
		"validation": result.Validation,
	})
}

func invoiceItemsFromUnits(units []billing.UnitRecord) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(units))
	for _, u := range units {
		item := models.InvoiceItem{
			ID:             uuid.New(),
			ItemID:         u.CatalogID,
			ItemType:       string(u.Category),
			Name:           u.Name,
			Quantity:       u.Quantity,
			UnitPrice:      u.UnitPrice,
			StaffName:      u.StaffName,
			TaxableAmount:  u.TaxableAmount,
			CGSTAmount:     u.CGST,
			SGSTAmount:     u.SGST,
			IGSTAmount:     u.IGST,
			DiscountAmount: u.DiscountAmount,
			TaxAmount:      u.TaxAmount,
		}
		if u.StaffID != uuid.Nil {
			staffID := u.StaffID
			item.StaffID = &staffID
		}
		items = append(items, item)
	}
	return items
}

func invoicePaymentsFromState(payments []billing.PaymentEntry) []models.InvoicePayment {
	out := make([]models.InvoicePayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, models.InvoicePayment{
			ID:            uuid.New(),
			PaymentModeID: p.ModeID,
			ModeName:      p.Name,
			Amount:        p.Amount,
		})
	}
	return out
}

func applyCustomerStats(tx *gorm.DB, invoice models.Invoice, direction int) error {
	updates := map[string]interface{}{
		"total_visits": gorm.Expr("total_visits + ?", direction),
		"total_spent":  gorm.Expr("total_spent + ?", invoice.GrandTotal.Mul(decimal.NewFromInt(int64(direction)))),
	}
	if direction > 0 {
		updates["last_visit"] = invoice.InvoiceDate
	}
	return tx.Model(&models.Customer{}).Where("id = ?", invoice.CustomerID).
		Updates(updates).Error
}

// productStockDeltas diffs the product quantities of the replaced unit
// rows against the new lines. A positive delta restores stock, a negative
// one consumes more; unchanged products are omitted.
func productStockDeltas(oldItems []models.InvoiceItem, lines []billing.ComputedLine) map[uuid.UUID]int {
	deltas := make(map[uuid.UUID]int)
	for _, item := range oldItems {
		if item.ItemType == string(billing.CategoryProduct) {
			deltas[item.ItemID] += item.Quantity
		}
	}
	for _, line := range lines {
		if line.Category == billing.CategoryProduct {
			deltas[line.CatalogID] -= line.Quantity
		}
	}
	for id, delta := range deltas {
		if delta == 0 {
			delete(deltas, id)
		}
	}
	return deltas
}

func adjustProductStock(tx *gorm.DB, salonID uuid.UUID, lines []billing.ComputedLine, direction int) error {
	for _, line := range lines {
		if line.Category != billing.CategoryProduct || line.Quantity == 0 {
			continue
		}
		if err := tx.Model(&models.Product{}).
			Where("salon_id = ? AND id = ?", salonID, line.CatalogID).
			Update("stock_qty", gorm.Expr("stock_qty + ?", direction*line.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetInvoices retrieves all invoices for the salon, optionally filtered
// by status (?status=hold lists parked invoices).
func GetInvoices(c *gin.Context) {
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

	query := config.DB.Preload("Items").Preload("Payments").
		Where("salon_id = ?", salonUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := query.Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID together with its unit
// records regrouped into editor lines.
func GetInvoice(c *gin.Context) {
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

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("Payments").
		Where("salon_id = ? AND id = ?", salonUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoice,
		"lines":   billing.GroupUnits(unitsFromInvoiceItems(invoice.Items)),
	})
}

func unitsFromInvoiceItems(items []models.InvoiceItem) []billing.UnitRecord {
	units := make([]billing.UnitRecord, 0, len(items))
	for _, item := range items {
		u := billing.UnitRecord{
			CatalogID:      item.ItemID,
			Name:           item.Name,
			Category:       billing.Category(item.ItemType),
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			StaffName:      item.StaffName,
			TaxableAmount:  item.TaxableAmount,
			CGST:           item.CGSTAmount,
			SGST:           item.SGSTAmount,
			IGST:           item.IGSTAmount,
			DiscountAmount: item.DiscountAmount,
			TaxAmount:      item.TaxAmount,
		}
		if item.StaffID != nil {
			u.StaffID = *item.StaffID
		}
		units = append(units, u)
	}
	return units
}

// UpdateInvoice replaces an invoice's contents from a freshly posted form
// state. A held invoice may transition to active here once it passes
// finalization checks.
func UpdateInvoice(c *gin.Context) {
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

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input InvoiceStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status == "" {
		input.Status = invoice.Status
	}
	wasHold := invoice.Status == "hold"

	var customer models.Customer
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	cat, staff, modes, err := loadCatalogs(salonUUID)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load catalogs")
		return
	}

	state, membershipID := toEngineState(input, customer, staff, modes)
	result := billing.Recompute(state, cat)

	if input.Status == "active" && !result.Validation.CanFinalize() {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Invoice cannot be finalized",
			"validation": result.Validation,
		})
		return
	}

	// Replace unit records and payment rows wholesale. The old rows are
	// snapshotted first so product stock can be diffed against the new lines.
	var oldItems []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", invoice.ID).Find(&oldItems).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load existing items")
		return
	}
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
		return
	}
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoicePayment{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing payments")
		return
	}

	previousTotal := invoice.GrandTotal

	invoice.CustomerID = input.CustomerID
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	invoice.Status = input.Status
	invoice.DiscountInput = input.DiscountInput
	invoice.DiscountType = string(state.DiscountType)
	invoice.MembershipID = membershipID
	invoice.MembershipPercent = state.MembershipPercent
	invoice.MembershipApplied = state.MembershipApplied
	invoice.ExemptAll = input.ExemptAll
	invoice.ExemptPackages = input.ExemptPackages
	invoice.ExemptProducts = input.ExemptProducts
	invoice.Subtotal = result.Summary.Subtotal
	invoice.MembershipDiscount = result.Summary.MembershipDiscount
	invoice.AdditionalDiscount = result.Summary.AdditionalDiscount
	invoice.TaxableAmount = result.Summary.TaxableAmount
	invoice.CGSTAmount = result.Summary.CGSTTotal
	invoice.SGSTAmount = result.Summary.SGSTTotal
	invoice.IGSTAmount = result.Summary.IGSTTotal
	invoice.TaxAmount = result.Summary.TaxAmount
	invoice.RoundOff = result.Summary.RoundOff
	invoice.GrandTotal = result.Summary.GrandTotal
	invoice.CreditAmount = state.CreditAmount
	invoice.Notes = input.Notes
	invoice.Items = invoiceItemsFromUnits(result.ExpandForPersistence())
	invoice.Payments = invoicePaymentsFromState(state.Payments)

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	if wasHold && invoice.Status == "active" {
		if err := applyCustomerStats(tx, invoice, 1); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
		if err := adjustProductStock(tx, salonUUID, result.Lines, -1); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product stock")
			return
		}
	} else if !wasHold && invoice.Status == "active" {
		// Keep the running spend in sync when an active invoice is edited.
		if !previousTotal.Equal(invoice.GrandTotal) {
			delta := invoice.GrandTotal.Sub(previousTotal)
			if err := tx.Model(&models.Customer{}).Where("id = ?", invoice.CustomerID).
				Update("total_spent", gorm.Expr("total_spent + ?", delta)).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
				return
			}
		}
		for productID, delta := range productStockDeltas(oldItems, result.Lines) {
			if err := tx.Model(&models.Product{}).
				Where("salon_id = ? AND id = ?", salonUUID, productID).
				Update("stock_qty", gorm.Expr("stock_qty + ?", delta)).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product stock")
				return
			}
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"invoice":    invoice,
		"summary":    result.Summary,
		"validation": result.Validation,
	})
}

// DeleteInvoice removes an invoice, reversing customer stats for active
// ones.
func DeleteInvoice(c *gin.Context) {
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

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoicePayment{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice payments")
		return
	}
	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	if invoice.Status == "active" {
		if err := applyCustomerStats(tx, invoice, -1); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
