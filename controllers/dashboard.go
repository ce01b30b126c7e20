// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type topItemRow struct {
	Name     string          `json:"name"`
	ItemType string          `json:"itemType"`
	Quantity int             `json:"quantity"`
	Taxable  decimal.Decimal `json:"taxable"`
}

// GetDashboard returns the landing-page summary: today's and this month's
// revenue, held invoice count, pending credit and top-selling items.
func GetDashboard(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	todayStart := utils.BeginningOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayRevenue, monthRevenue, pendingCredit decimal.Decimal
	var todayCount, heldCount int64

	config.DB.Model(&models.Invoice{}).
		Where("salon_id = ? AND status = 'active' AND invoice_date >= ?", salonUUID, todayStart).
		Count(&todayCount)
	config.DB.Raw(`
		SELECT COALESCE(SUM(grand_total), 0) FROM invoices
		WHERE salon_id = ? AND status = 'active' AND invoice_date >= ?`,
		salonUUID, todayStart).Scan(&todayRevenue)
	config.DB.Raw(`
		SELECT COALESCE(SUM(grand_total), 0) FROM invoices
		WHERE salon_id = ? AND status = 'active' AND invoice_date >= ?`,
		salonUUID, monthStart).Scan(&monthRevenue)
	config.DB.Model(&models.Invoice{}).
		Where("salon_id = ? AND status = 'hold'", salonUUID).
		Count(&heldCount)
	config.DB.Raw(`
		SELECT COALESCE(SUM(credit_amount), 0) FROM invoices
		WHERE salon_id = ? AND status = 'active' AND credit_amount > 0`,
		salonUUID).Scan(&pendingCredit)

	var topItems []topItemRow
	config.DB.Raw(`
		SELECT ii.name, ii.item_type,
		       COALESCE(SUM(ii.quantity), 0) AS quantity,
		       COALESCE(SUM(ii.taxable_amount), 0) AS taxable
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.salon_id = ? AND i.status = 'active' AND i.invoice_date >= ?
		GROUP BY ii.name, ii.item_type
		ORDER BY taxable DESC
		LIMIT 5`,
		salonUUID, monthStart).Scan(&topItems)

	var lowStock []models.Product
	config.DB.Where("salon_id = ? AND is_active = true AND stock_qty <= 5", salonUUID).
		Order("stock_qty ASC").Limit(5).Find(&lowStock)

	c.JSON(http.StatusOK, gin.H{
		"todayRevenue":  todayRevenue,
		"todayInvoices": todayCount,
		"monthRevenue":  monthRevenue,
		"heldInvoices":  heldCount,
		"pendingCredit": pendingCredit,
		"topItems":      topItems,
		"lowStock":      lowStock,
	})
}
