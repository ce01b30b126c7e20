// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"salonbill-backend/config"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parseDateRange reads ?from=YYYY-MM-DD&to=YYYY-MM-DD, defaulting to the
// last 30 days. The `to` bound is exclusive end-of-day.
func parseDateRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := utils.BeginningOfDay(now.AddDate(0, 0, -30))
	to := utils.BeginningOfDay(now).AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

type revenueRow struct {
	Day                time.Time       `json:"day"`
	InvoiceCount       int             `json:"invoiceCount"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	MembershipDiscount decimal.Decimal `json:"membershipDiscount"`
	AdditionalDiscount decimal.Decimal `json:"additionalDiscount"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	CreditAmount       decimal.Decimal `json:"creditAmount"`
}

// GetRevenueReport returns a per-day breakdown of finalized invoices.
func GetRevenueReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	from, to := parseDateRange(c)

	var rows []revenueRow
	err := config.DB.Raw(`
		SELECT DATE_TRUNC('day', invoice_date) AS day,
		       COUNT(*) AS invoice_count,
		       COALESCE(SUM(subtotal), 0) AS subtotal,
		       COALESCE(SUM(membership_discount), 0) AS membership_discount,
		       COALESCE(SUM(additional_discount), 0) AS additional_discount,
		       COALESCE(SUM(tax_amount), 0) AS tax_amount,
		       COALESCE(SUM(grand_total), 0) AS grand_total,
		       COALESCE(SUM(credit_amount), 0) AS credit_amount
		FROM invoices
		WHERE salon_id = ? AND status = 'active'
		  AND invoice_date >= ? AND invoice_date < ?
		GROUP BY 1 ORDER BY 1`,
		salonUUID, from, to).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate revenue report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}

type taxRow struct {
	Day        time.Time       `json:"day"`
	Taxable    decimal.Decimal `json:"taxable"`
	CGSTAmount decimal.Decimal `json:"cgstAmount"`
	SGSTAmount decimal.Decimal `json:"sgstAmount"`
	IGSTAmount decimal.Decimal `json:"igstAmount"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
}

// GetTaxReport returns a per-day GST summary for filing.
func GetTaxReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	from, to := parseDateRange(c)

	var rows []taxRow
	err := config.DB.Raw(`
		SELECT DATE_TRUNC('day', invoice_date) AS day,
		       COALESCE(SUM(taxable_amount), 0) AS taxable,
		       COALESCE(SUM(cgst_amount), 0) AS cgst_amount,
		       COALESCE(SUM(sgst_amount), 0) AS sgst_amount,
		       COALESCE(SUM(igst_amount), 0) AS igst_amount,
		       COALESCE(SUM(tax_amount), 0) AS tax_amount
		FROM invoices
		WHERE salon_id = ? AND status = 'active'
		  AND invoice_date >= ? AND invoice_date < ?
		GROUP BY 1 ORDER BY 1`,
		salonUUID, from, to).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tax report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}

type staffRevenueRow struct {
	StaffID   *uuid.UUID      `json:"staffId"`
	StaffName string          `json:"staffName"`
	UnitCount int             `json:"unitCount"`
	Taxable   decimal.Decimal `json:"taxable"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
}

// GetStaffRevenueReport aggregates the expanded unit records per staff
// member. The per-unit proportional shares make this sum exactly match
// the invoice totals.
func GetStaffRevenueReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	from, to := parseDateRange(c)

	var rows []staffRevenueRow
	err := config.DB.Raw(`
		SELECT ii.staff_id,
		       COALESCE(NULLIF(ii.staff_name, ''), 'Unassigned') AS staff_name,
		       COUNT(*) AS unit_count,
		       COALESCE(SUM(ii.taxable_amount), 0) AS taxable,
		       COALESCE(SUM(ii.tax_amount), 0) AS tax_amount
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.salon_id = ? AND i.status = 'active'
		  AND i.invoice_date >= ? AND i.invoice_date < ?
		GROUP BY ii.staff_id, 2
		ORDER BY taxable DESC`,
		salonUUID, from, to).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate staff report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}

type itemRevenueRow struct {
	ItemID   uuid.UUID       `json:"itemId"`
	ItemType string          `json:"itemType"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Taxable  decimal.Decimal `json:"taxable"`
	Discount decimal.Decimal `json:"discount"`
}

// GetItemRevenueReport aggregates unit records per catalog item.
func GetItemRevenueReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	from, to := parseDateRange(c)

	var rows []itemRevenueRow
	err := config.DB.Raw(`
		SELECT ii.item_id, ii.item_type, ii.name,
		       COALESCE(SUM(ii.quantity), 0) AS quantity,
		       COALESCE(SUM(ii.taxable_amount), 0) AS taxable,
		       COALESCE(SUM(ii.discount_amount), 0) AS discount
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.salon_id = ? AND i.status = 'active'
		  AND i.invoice_date >= ? AND i.invoice_date < ?
		GROUP BY ii.item_id, ii.item_type, ii.name
		ORDER BY taxable DESC`,
		salonUUID, from, to).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate item report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}

type paymentModeRow struct {
	ModeName string          `json:"modeName"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// GetPaymentModeReport totals collected amounts per payment mode.
func GetPaymentModeReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}
	from, to := parseDateRange(c)

	var rows []paymentModeRow
	err := config.DB.Raw(`
		SELECT ip.mode_name, COUNT(*) AS count,
		       COALESCE(SUM(ip.amount), 0) AS amount
		FROM invoice_payments ip
		JOIN invoices i ON i.id = ip.invoice_id
		WHERE i.salon_id = ? AND i.status = 'active'
		  AND i.invoice_date >= ? AND i.invoice_date < ?
		GROUP BY ip.mode_name
		ORDER BY amount DESC`,
		salonUUID, from, to).Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate payment report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}
