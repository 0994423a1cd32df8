package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mintcleaning/booking-app/controllers"
	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/services"
	"github.com/mintcleaning/booking-app/utils"
)

// stubCalendarClient stands in for the Google Calendar integration.
type stubCalendarClient struct {
	link string
	err  error
}

func (s *stubCalendarClient) CreateMeetEvent(profile models.CleanerProfile, startTime time.Time) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.link, nil
}

func setupTestDBForApplications() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.CleanerProfile{},
		&models.Application{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupApplicationRouter(db *gorm.DB, calendar services.CalendarClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	scheduler := services.NewSchedulerService(db, calendar, nil)
	appCtrl := controllers.NewApplicationController(db, scheduler)
	router.GET("/applications", appCtrl.GetAllApplications)
	router.GET("/applications/:app_id", appCtrl.GetApplicationByID)
	router.POST("/applications/:app_id/schedule", appCtrl.ScheduleInterview)
	router.POST("/applications/:app_id/complete", appCtrl.CompleteInterview)
	router.PATCH("/applications/:app_id", appCtrl.UpdateStatus)
	return router
}

func seedApplicationRow(db *gorm.DB, status string, verified bool) models.Application {
	profile := models.CleanerProfile{
		FirstName:             "Alex",
		LastName:              "Smith",
		MobileNumber:          "07700900456",
		Email:                 "alex@example.com",
		Postcode:              "E1 6AN",
		YearsExperience:       "1-3",
		CleaningTypes:         []string{"Residential", "Office"},
		ExperienceDescription: "Experienced in domestic and office cleaning.",
		DesiredHoursPerWeek:   25,
		AvailableDays:         []string{"Tuesday", "Thursday"},
		CommitmentLength:      "6_months",
		Verified:              verified,
	}
	db.Create(&profile)

	app := models.Application{CleanerID: profile.ID, Status: status}
	db.Create(&app)
	return app
}

func TestScheduleInterviewEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{link: "https://meet.google.com/xyz-test"})

	app := seedApplicationRow(db, models.ApplicationStatusPendingReview, false)

	payload := map[string]string{"interview_date": "2025-03-10T09:00:00Z"}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	url := fmt.Sprintf("/applications/%d/schedule", app.ID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, true, resp["status"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "https://meet.google.com/xyz-test", data["meeting_link"])

	var stored models.Application
	assert.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusScheduledInterview, stored.Status)
	assert.NotNil(t, stored.MeetingLink)
}

func TestScheduleInterviewEndpointConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{link: "https://meet.google.com/xyz-test"})

	// Already scheduled, a second attempt must be rejected.
	app := seedApplicationRow(db, models.ApplicationStatusScheduledInterview, false)

	payload := map[string]string{"interview_date": "2025-03-10T09:00:00Z"}
	payloadBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("/applications/%d/schedule", app.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleInterviewEndpointCalendarDown(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{err: fmt.Errorf("calendar unavailable")})

	app := seedApplicationRow(db, models.ApplicationStatusPendingReview, false)

	payload := map[string]string{"interview_date": "2025-03-10T09:00:00Z"}
	payloadBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("/applications/%d/schedule", app.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Scheduling failed", resp["message"])

	// The failed attempt must have been rolled back.
	var stored models.Application
	assert.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusPendingReview, stored.Status)
	assert.Nil(t, stored.InterviewDate)
}

func TestCompleteInterviewEndpointRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{})

	app := seedApplicationRow(db, models.ApplicationStatusScheduledInterview, true)

	payload := map[string]string{"decision": "rejected", "notes": "did not attend"}
	payloadBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("/applications/%d/complete", app.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Application
	assert.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)

	var profile models.CleanerProfile
	assert.NoError(t, db.First(&profile, app.CleanerID).Error)
	assert.False(t, profile.Verified)
}

func TestCompleteInterviewEndpointBadDecision(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{})

	app := seedApplicationRow(db, models.ApplicationStatusScheduledInterview, false)

	payload := map[string]string{"decision": "maybe"}
	payloadBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("/applications/%d/complete", app.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpointSkipsNoSteps(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{})

	// Pending applications cannot jump straight to a terminal status.
	app := seedApplicationRow(db, models.ApplicationStatusPendingReview, false)

	payload := map[string]string{"status": "verified"}
	payloadBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("/applications/%d", app.ID)
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored models.Application
	assert.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusPendingReview, stored.Status)
}

func TestGetApplicationsEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForApplications()
	router := setupApplicationRouter(db, &stubCalendarClient{})

	app := seedApplicationRow(db, models.ApplicationStatusPendingReview, false)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/applications/%d", app.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(app.ID), data["id"].(float64))

	// Listing includes the joined cleaner profile.
	req, _ = http.NewRequest("GET", "/applications", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	items := listResp["data"].([]interface{})
	assert.NotEmpty(t, items)
	first := items[0].(map[string]interface{})
	assert.NotNil(t, first["cleaner_profile"])
}
