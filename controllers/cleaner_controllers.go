package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/realtime"
	"github.com/mintcleaning/booking-app/services"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

type CleanerController struct {
	DB *gorm.DB
}

func NewCleanerController(db *gorm.DB) *CleanerController {
	return &CleanerController{DB: db}
}

// Apply -> public recruitment intake. Creates the profile and its
// pending_review application together, then exports the submission
// (spreadsheet + admin email) best-effort.
func (cc *CleanerController) Apply(c *gin.Context) {
	type reqBody struct {
		FirstName             string   `json:"first_name" binding:"required,min=2"`
		LastName              string   `json:"last_name" binding:"required,min=2"`
		MobileNumber          string   `json:"mobile_number" binding:"required,min=10"`
		Email                 string   `json:"email" binding:"required,email"`
		Gender                *string  `json:"gender"`
		Postcode              string   `json:"postcode" binding:"required,min=5"`
		YearsExperience       string   `json:"years_experience" binding:"required"`
		CleaningTypes         []string `json:"cleaning_types" binding:"required,min=1"`
		ExperienceDescription string   `json:"experience_description" binding:"required,min=20"`
		DesiredHoursPerWeek   int      `json:"desired_hours_per_week" binding:"required,min=1"`
		AvailableDays         []string `json:"available_days" binding:"required,min=1"`
		CommitmentLength      string   `json:"commitment_length" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	profile := models.CleanerProfile{
		FirstName:             body.FirstName,
		LastName:              body.LastName,
		MobileNumber:          body.MobileNumber,
		Email:                 body.Email,
		Gender:                body.Gender,
		Postcode:              body.Postcode,
		YearsExperience:       body.YearsExperience,
		CleaningTypes:         body.CleaningTypes,
		ExperienceDescription: body.ExperienceDescription,
		DesiredHoursPerWeek:   body.DesiredHoursPerWeek,
		AvailableDays:         body.AvailableDays,
		CommitmentLength:      body.CommitmentLength,
	}

	var app models.Application
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		app = models.Application{
			CleanerID: profile.ID,
			Status:    models.ApplicationStatusPendingReview,
		}
		return tx.Create(&app).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Export failures never fail the submission itself.
	if err := services.GetSheetsService().AppendApplication(app, profile); err != nil {
		utils.ErrorLogger.Printf("Sheet export failed for application %d: %v", app.ID, err)
	}
	if err := services.GetMailerService().SendNewApplicationAlert(profile); err != nil {
		utils.ErrorLogger.Printf("Admin alert email failed for application %d: %v", app.ID, err)
	}

	app.CleanerProfile = profile
	realtime.BroadcastNewApplication(app)
	utils.InfoLogger.Printf("New cleaner application %d from %s", app.ID, profile.Email)

	utils.RespondJSON(c, http.StatusCreated, "Application submitted", gin.H{
		"application_id": app.ID,
		"status":         app.Status,
	})
}

// GetAllCleaners
func (cc *CleanerController) GetAllCleaners(c *gin.Context) {
	var profiles []models.CleanerProfile
	query := cc.DB.Order("created_at DESC")
	if c.Query("verified") == "true" {
		query = query.Where("verified = ?", true)
	}
	if err := query.Find(&profiles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaners", profiles)
}

// GetCleanerByID
func (cc *CleanerController) GetCleanerByID(c *gin.Context) {
	idStr := c.Param("cleaner_id")
	id, _ := strconv.Atoi(idStr)

	var profile models.CleanerProfile
	if err := cc.DB.First(&profile, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaner detail", profile)
}
