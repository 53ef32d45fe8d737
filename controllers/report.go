// controllers/report.go
package controllers

import (
	"net/http"
	"strconv"

	"phoneshop-backend/config"
	"phoneshop-backend/models"
	"phoneshop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

type SalesMetrics struct {
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
}

type InventoryMetrics struct {
	TotalDevices     int64 `json:"total_devices"`
	AvailableDevices int64 `json:"available_devices"`
	SoldDevices      int64 `json:"sold_devices"`
}

type StaffMetrics struct {
	TotalSales       int64   `json:"total_sales"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalProfit      float64 `json:"total_profit"`
	AvgProfitPerSale float64 `json:"avg_profit_per_sale"`
}

type PaymentBreakdown struct {
	Type  string  `json:"type"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type InventoryLine struct {
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	Total            int64   `json:"total"`
	Available        int64   `json:"available"`
	Sold             int64   `json:"sold"`
	AvgPurchasePrice float64 `json:"avg_purchase_price"`
	AvgSalePrice     float64 `json:"avg_sale_price"`
	AvgProfitMargin  float64 `json:"avg_profit_margin"`
}

type TrendPoint struct {
	Date       string  `json:"date"`
	SalesCount int64   `json:"sales_count"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
}

func reportDays(c *gin.Context) int {
	days := 30
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	return days
}

// GetSummary returns overall sales, inventory and credit metrics for the
// requested window.
func (rc *ReportController) GetSummary(c *gin.Context) {
	days := reportDays(c)
	dateFrom := utils.DaysAgo(days)

	var sales SalesMetrics
	if err := config.DB.Table("sales").
		Select("COUNT(sales.id) as total_sales, COALESCE(SUM(sales.sale_price), 0) as total_revenue, COALESCE(SUM(sales.sale_price - devices.purchase_price), 0) as total_profit").
		Joins("JOIN devices ON devices.id = sales.device_id").
		Where("sales.sale_date >= ?", dateFrom).
		Scan(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get sales metrics")
		return
	}

	var inventory InventoryMetrics
	if err := config.DB.Table("devices").
		Select("COUNT(*) as total_devices, COUNT(*) FILTER (WHERE status = 'available') as available_devices, COUNT(*) FILTER (WHERE status = 'sold') as sold_devices").
		Scan(&inventory).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get inventory metrics")
		return
	}

	var outstanding float64
	if err := config.DB.Model(&models.Sale{}).
		Where("payment_type = ?", models.PaymentCredit).
		Select("COALESCE(SUM(sale_price - amount_paid), 0)").
		Scan(&outstanding).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get credit metrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period_days":       days,
		"sales_metrics":     sales,
		"inventory_metrics": inventory,
		"credit_metrics":    gin.H{"total_outstanding": outstanding},
	})
}

// GetStaffPerformance returns per-seller metrics and a payment breakdown.
func (rc *ReportController) GetStaffPerformance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	days := reportDays(c)
	dateFrom := utils.DaysAgo(days)

	var metrics StaffMetrics
	if err := config.DB.Table("sales").
		Select("COUNT(sales.id) as total_sales, COALESCE(SUM(sales.sale_price), 0) as total_revenue, COALESCE(SUM(sales.sale_price - devices.purchase_price), 0) as total_profit, COALESCE(AVG(sales.sale_price - devices.purchase_price), 0) as avg_profit_per_sale").
		Joins("JOIN devices ON devices.id = sales.device_id").
		Where("sales.seller_id = ? AND sales.sale_date >= ?", userID, dateFrom).
		Scan(&metrics).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get staff metrics")
		return
	}

	var breakdown []PaymentBreakdown
	if err := config.DB.Table("sales").
		Select("payment_type as type, COUNT(id) as count, COALESCE(SUM(sale_price), 0) as total").
		Where("seller_id = ? AND sale_date >= ?", userID, dateFrom).
		Group("payment_type").
		Scan(&breakdown).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get payment breakdown")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                user,
		"period_days":         days,
		"performance_metrics": metrics,
		"payment_breakdown":   breakdown,
	})
}

// GetInventoryReport breaks inventory down by brand and model.
func (rc *ReportController) GetInventoryReport(c *gin.Context) {
	var lines []InventoryLine
	if err := config.DB.Table("devices").
		Select(`devices.brand, devices.model,
			COUNT(devices.id) as total,
			COUNT(devices.id) FILTER (WHERE devices.status = 'available') as available,
			COUNT(devices.id) FILTER (WHERE devices.status = 'sold') as sold,
			COALESCE(AVG(devices.purchase_price), 0) as avg_purchase_price,
			COALESCE(AVG(sales.sale_price), 0) as avg_sale_price`).
		Joins("LEFT JOIN sales ON sales.device_id = devices.id").
		Group("devices.brand, devices.model").
		Order("devices.brand, devices.model").
		Scan(&lines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get inventory report")
		return
	}

	for i := range lines {
		lines[i].AvgProfitMargin = lines[i].AvgSalePrice - lines[i].AvgPurchasePrice
	}

	c.JSON(http.StatusOK, lines)
}

// GetTrends returns daily or monthly revenue/profit buckets.
func (rc *ReportController) GetTrends(c *gin.Context) {
	days := reportDays(c)
	dateFrom := utils.DaysAgo(days)

	bucket := "day"
	if c.Query("group") == "month" {
		bucket = "month"
	}

	var points []TrendPoint
	if err := config.DB.Raw(`
		SELECT TO_CHAR(DATE_TRUNC(?, sales.sale_date), 'YYYY-MM-DD') as date,
			COUNT(sales.id) as sales_count,
			COALESCE(SUM(sales.sale_price), 0) as revenue,
			COALESCE(SUM(sales.sale_price - devices.purchase_price), 0) as profit
		FROM sales
		JOIN devices ON devices.id = sales.device_id
		WHERE sales.sale_date >= ?
		GROUP BY DATE_TRUNC(?, sales.sale_date)
		ORDER BY DATE_TRUNC(?, sales.sale_date)
	`, bucket, dateFrom, bucket, bucket).Scan(&points).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get sales trends")
		return
	}

	c.JSON(http.StatusOK, points)
}
