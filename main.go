package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mintcleaning/booking-app/config"
	"github.com/mintcleaning/booking-app/middlewares"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/router"
	"github.com/mintcleaning/booking-app/services"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Warn early about missing external-service credentials rather than on
	// the first admin action.
	if err := services.GetCalendarService().ValidateConfig(); err != nil {
		utils.ErrorLogger.Printf("Calendar integration not fully configured: %v", err)
	}
	if err := services.GetMailerService().ValidateConfig(); err != nil {
		utils.ErrorLogger.Printf("Mailer integration not fully configured: %v", err)
	}
	if err := services.GetSheetsService().ValidateConfig(); err != nil {
		utils.ErrorLogger.Printf("Sheets integration not fully configured: %v", err)
	}

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.CleanerProfile{},
		&models.Application{},
		&models.Quote{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
