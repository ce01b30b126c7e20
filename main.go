package main

import (
	"fmt"
	"log"
	"os"

	"salonbill-backend/config"
	"salonbill-backend/models"
	"salonbill-backend/routes"
	"salonbill-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Membership{},
		&models.Service{},
		&models.Package{},
		&models.PackageItem{},
		&models.Product{},
		&models.Employee{},
		&models.TaxGroup{},
		&models.PaymentMode{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoicePayment{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)
}

func main() {
	reminderService := services.NewReminderService(config.DB)
	reminderService.StartScheduler()

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
