package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> overview counts for the admin console
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalApplications int64 `json:"total_applications"`
		TodayApplications int64 `json:"today_applications"`
		ApplicationStats  struct {
			PendingReview      int64 `json:"pending_review"`
			ScheduledInterview int64 `json:"scheduled_interview"`
			Verified           int64 `json:"verified"`
			Rejected           int64 `json:"rejected"`
		} `json:"application_stats"`
		QuoteStats struct {
			Total int64 `json:"total"`
			Today int64 `json:"today"`
		} `json:"quote_stats"`
		CleanerStats struct {
			Total    int64 `json:"total"`
			Verified int64 `json:"verified"`
		} `json:"cleaner_stats"`
		PendingNotifications int64 `json:"pending_notifications"`
	}

	ac.DB.Model(&models.Application{}).Count(&stats.TotalApplications)
	ac.DB.Model(&models.Application{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayApplications)

	ac.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPendingReview).
		Count(&stats.ApplicationStats.PendingReview)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusScheduledInterview).
		Count(&stats.ApplicationStats.ScheduledInterview)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusVerified).
		Count(&stats.ApplicationStats.Verified)
	ac.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusRejected).
		Count(&stats.ApplicationStats.Rejected)

	ac.DB.Model(&models.Quote{}).Count(&stats.QuoteStats.Total)
	ac.DB.Model(&models.Quote{}).Where("DATE(created_at) = ?", today).Count(&stats.QuoteStats.Today)

	ac.DB.Model(&models.CleanerProfile{}).Count(&stats.CleanerStats.Total)
	ac.DB.Model(&models.CleanerProfile{}).Where("verified = ?", true).Count(&stats.CleanerStats.Verified)

	ac.DB.Model(&models.Notification{}).Count(&stats.PendingNotifications)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
