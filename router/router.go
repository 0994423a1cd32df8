package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mintcleaning/booking-app/controllers"
	"github.com/mintcleaning/booking-app/middlewares"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	scheduler := services.NewSchedulerService(db, services.GetCalendarService(), services.GetMailerService())

	userCtrl := controllers.NewUserController(db)
	quoteCtrl := controllers.NewQuoteController(db)
	cleanerCtrl := controllers.NewCleanerController(db)
	applicationCtrl := controllers.NewApplicationController(db, scheduler)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register and the public intake forms
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/quotes", quoteCtrl.CreateQuote)
		public.POST("/recruit/applications", cleanerCtrl.Apply)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRoles(models.RoleAdmin))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// APPLICATIONS (review surface)
	auth.GET("/applications", applicationCtrl.GetAllApplications)
	auth.GET("/applications/:app_id", applicationCtrl.GetApplicationByID)
	auth.POST("/applications/:app_id/schedule", applicationCtrl.ScheduleInterview)
	auth.POST("/applications/:app_id/complete", applicationCtrl.CompleteInterview)
	auth.PATCH("/applications/:app_id", applicationCtrl.UpdateStatus)

	// CLEANERS
	auth.GET("/cleaners", cleanerCtrl.GetAllCleaners)
	auth.GET("/cleaners/:cleaner_id", cleanerCtrl.GetCleanerByID)

	// QUOTES
	auth.GET("/quotes", quoteCtrl.GetAllQuotes)
	auth.GET("/quotes/:quote_id", quoteCtrl.GetQuoteByID)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// DASHBOARD
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	// WebSocket endpoint for the live admin feed
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/admin", controllers.AdminFeedHandler)
	}

	return r
}
