package controllers

import (
	"net/http"

	"phoneshop-backend/config"
	"phoneshop-backend/models"
	"phoneshop-backend/utils"

	"github.com/gin-gonic/gin"
)

type TopProduct struct {
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	TotalSold int64   `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

// calculateGrowthRate compares sale counts between the last period and the
// one before it.
func calculateGrowthRate(days int) float64 {
	currentStart := utils.DaysAgo(days)
	previousStart := utils.DaysAgo(2 * days)

	var currentSales, previousSales int64
	config.DB.Model(&models.Sale{}).Where("sale_date >= ?", currentStart).Count(&currentSales)
	config.DB.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", previousStart, currentStart).
		Count(&previousSales)

	if previousSales == 0 {
		if currentSales > 0 {
			return 100
		}
		return 0
	}
	return float64(currentSales-previousSales) / float64(previousSales) * 100
}

// GetDashboardOverview returns the admin dashboard metrics.
func GetDashboardOverview(c *gin.Context) {
	days := reportDays(c)
	dateFrom := utils.DaysAgo(days)

	type periodStats struct {
		TotalSales     int64   `json:"total_sales"`
		TotalRevenue   float64 `json:"total_revenue"`
		TotalCollected float64 `json:"total_collected"`
	}
	var stats periodStats
	if err := config.DB.Model(&models.Sale{}).
		Select("COUNT(id) as total_sales, COALESCE(SUM(sale_price), 0) as total_revenue, COALESCE(SUM(amount_paid), 0) as total_collected").
		Where("sale_date >= ?", dateFrom).
		Scan(&stats).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get sales stats")
		return
	}

	var availableDevices int64
	config.DB.Model(&models.Device{}).Where("status = ?", models.DeviceAvailable).Count(&availableDevices)

	var outstandingCredit float64
	config.DB.Model(&models.Sale{}).
		Where("payment_type = ?", models.PaymentCredit).
		Select("COALESCE(SUM(sale_price - amount_paid), 0)").
		Scan(&outstandingCredit)

	var breakdown []PaymentBreakdown
	config.DB.Table("sales").
		Select("payment_type as type, COUNT(id) as count, COALESCE(SUM(sale_price), 0) as total").
		Where("sale_date >= ?", dateFrom).
		Group("payment_type").
		Scan(&breakdown)

	var recentSales []models.Sale
	config.DB.Preload("Device").Preload("Seller").
		Order("sale_date DESC").Limit(5).Find(&recentSales)

	recent := make([]gin.H, 0, len(recentSales))
	for i := range recentSales {
		recent = append(recent, saleJSON(&recentSales[i]))
	}

	var topProducts []TopProduct
	config.DB.Table("devices").
		Select("devices.brand, devices.model, COUNT(sales.id) as total_sold, COALESCE(SUM(sales.sale_price), 0) as revenue").
		Joins("JOIN sales ON sales.device_id = devices.id").
		Group("devices.brand, devices.model").
		Order("total_sold DESC").
		Limit(5).
		Scan(&topProducts)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_sales":        stats.TotalSales,
			"total_revenue":      stats.TotalRevenue,
			"total_collected":    stats.TotalCollected,
			"available_devices":  availableDevices,
			"outstanding_credit": outstandingCredit,
			"sales_growth":       calculateGrowthRate(days),
		},
		"payment_data": breakdown,
		"recent_sales": recent,
		"top_products": topProducts,
	})
}
