package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/realtime"
	"github.com/mintcleaning/booking-app/services"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

// ApplicationController is the admin review surface over the scheduling
// services. It maps typed scheduling errors to operator-facing responses.
type ApplicationController struct {
	DB        *gorm.DB
	Scheduler *services.SchedulerService
}

func NewApplicationController(db *gorm.DB, scheduler *services.SchedulerService) *ApplicationController {
	return &ApplicationController{DB: db, Scheduler: scheduler}
}

// GetAllApplications -> newest first, with the cleaner profile joined
func (ac *ApplicationController) GetAllApplications(c *gin.Context) {
	var apps []models.Application
	if err := ac.DB.Preload("CleanerProfile").Order("created_at DESC").Find(&apps).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All applications", apps)
}

// GetApplicationByID
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	idStr := c.Param("app_id")
	id, _ := strconv.Atoi(idStr)

	var app models.Application
	if err := ac.DB.Preload("CleanerProfile").First(&app, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Application detail", app)
}

// ScheduleInterview -> books the interview slot and the Meet call
func (ac *ApplicationController) ScheduleInterview(c *gin.Context) {
	idStr := c.Param("app_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		InterviewDate time.Time `json:"interview_date" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	meetingLink, err := ac.Scheduler.ScheduleInterview(uint(id), body.InterviewDate)
	if err != nil {
		ac.respondSchedulingError(c, err, meetingLink)
		return
	}

	ac.broadcastApplication(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Interview scheduled", gin.H{
		"meeting_link": meetingLink,
	})
}

// CompleteInterview -> records the verified/rejected decision with notes
func (ac *ApplicationController) CompleteInterview(c *gin.Context) {
	idStr := c.Param("app_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Decision string `json:"decision" binding:"required,oneof=verified rejected"`
		Notes    string `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.Scheduler.CompleteInterview(uint(id), body.Decision, body.Notes); err != nil {
		ac.respondSchedulingError(c, err, "")
		return
	}

	ac.broadcastApplication(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Interview completed", gin.H{
		"app_id":   id,
		"decision": body.Decision,
	})
}

// UpdateStatus -> direct status overrides still go through the lifecycle
// rules, so a pending application cannot jump straight to a terminal status.
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	idStr := c.Param("app_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.ApplicationStatusVerified, models.ApplicationStatusRejected:
		if err := ac.Scheduler.CompleteInterview(uint(id), body.Status, body.Notes); err != nil {
			ac.respondSchedulingError(c, err, "")
			return
		}
	case models.ApplicationStatusScheduledInterview:
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("scheduling an interview requires a date, use the schedule endpoint"))
		return
	default:
		var app models.Application
		current := body.Status
		if err := ac.DB.First(&app, id).Error; err == nil {
			current = app.Status
		}
		utils.RespondError(c, http.StatusConflict,
			&services.InvalidTransitionError{From: current, To: body.Status})
		return
	}

	ac.broadcastApplication(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Application status updated", gin.H{
		"app_id": id,
		"status": body.Status,
	})
}

// respondSchedulingError translates the scheduling error taxonomy into HTTP
// responses. Compensated failures read as an ordinary scheduling failure;
// a failed compensation gets an explicit manual-fix message.
func (ac *ApplicationController) respondSchedulingError(c *gin.Context, err error, meetingLink string) {
	var notFound *services.NotFoundError
	var invalid *services.InvalidTransitionError
	var compensationFailed *services.CompensationFailedError
	var linkLost *services.LinkPersistenceError
	var external *services.ExternalServiceError

	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &invalid):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &compensationFailed):
		utils.RespondJSON(c, http.StatusInternalServerError,
			"Scheduling failed and could not be undone, this application needs a manual fix", nil)
	case errors.As(err, &linkLost):
		utils.RespondJSON(c, http.StatusInternalServerError,
			"Interview scheduled but the meeting link could not be saved, re-attach it manually", gin.H{
				"meeting_link": meetingLink,
			})
	case errors.As(err, &external):
		utils.RespondJSON(c, http.StatusBadGateway, "Scheduling failed", nil)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func (ac *ApplicationController) broadcastApplication(id uint) {
	var app models.Application
	if err := ac.DB.Preload("CleanerProfile").First(&app, id).Error; err != nil {
		return
	}
	realtime.BroadcastApplicationUpdate(app)
	// Status changes move the dashboard counters, tell the console to refetch.
	realtime.BroadcastDashboardUpdate(gin.H{"application_id": app.ID, "status": app.Status})
}
