package routes

import (
	"os"
	"strings"

	"phoneshop-backend/config"
	"phoneshop-backend/controllers"
	"phoneshop-backend/services"
	"phoneshop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	coordinator := services.NewCoordinator(config.DB, zap.L())
	deviceController := controllers.NewDeviceController(coordinator)
	saleController := controllers.NewSaleController(coordinator)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/token/refresh", controllers.RefreshToken)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Device routes; writes are admin only
		devices := api.Group("/devices")
		{
			devices.GET("", deviceController.GetDevices)
			devices.GET("/:imei", deviceController.GetDevice)

			adminDevices := devices.Group("", utils.AdminRequired())
			adminDevices.POST("", deviceController.CreateDevice)
			adminDevices.PUT("/:imei", deviceController.UpdateDevice)
			adminDevices.DELETE("/:imei", deviceController.DeleteDevice)
		}

		// Sale routes
		sales := api.Group("/sales")
		{
			sales.GET("", saleController.GetSales)
			sales.GET("/:id", saleController.GetSale)
			sales.POST("", saleController.CreateSale)
			sales.POST("/:id/payment", saleController.AddPayment)
		}

		// Report routes
		reportController := controllers.ReportController{}
		reports := api.Group("/reports", utils.AdminRequired())
		{
			reports.GET("/summary", reportController.GetSummary)
			reports.GET("/staff/:id", reportController.GetStaffPerformance)
			reports.GET("/inventory", reportController.GetInventoryReport)
			reports.GET("/trends", reportController.GetTrends)
		}

		// Dashboard routes
		api.GET("/dashboard", utils.AdminRequired(), controllers.GetDashboardOverview)

		// User management routes
		users := api.Group("/users", utils.AdminRequired())
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.PUT("/:id", controllers.UpdateUser)
		}
	}

	return r
}
