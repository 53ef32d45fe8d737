package main

import (
	"fmt"
	"log"
	"os"

	"phoneshop-backend/config"
	"phoneshop-backend/models"
	"phoneshop-backend/routes"
	"phoneshop-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	if err := config.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Sale{},
	)
}

func main() {
	creditAlerts := services.NewCreditAlertService(config.DB)
	creditAlerts.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
