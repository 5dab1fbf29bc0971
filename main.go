package main

import (
	"fmt"
	"log"
	"os"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/routes"
	"tailortrack-backend/services"

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
		&models.Shop{},
		&models.User{},
		&models.Client{},
		&models.CatalogItem{},
		&models.Order{},
		&models.Garment{},
		&models.GarmentService{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.Appointment{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

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
