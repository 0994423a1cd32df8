package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mintcleaning/booking-app/models"
	"github.com/mintcleaning/booking-app/utils"
	"gorm.io/gorm"
)

// CalendarClient creates the remote meeting for an interview and returns a
// joinable link.
type CalendarClient interface {
	CreateMeetEvent(profile models.CleanerProfile, startTime time.Time) (string, error)
}

// InterviewMailer sends the applicant-facing interview notification. Mail
// delivery is best-effort and never affects the scheduling outcome.
type InterviewMailer interface {
	SendInterviewScheduled(profile models.CleanerProfile, startTime time.Time, meetingLink string) error
}

// SchedulerService sequences the multi-system writes behind one admin
// scheduling action: status transition, calendar event creation and the
// meeting-link write-back. There is no cross-system transaction, so partial
// failures are compensated or reported per step.
type SchedulerService struct {
	db       *gorm.DB
	calendar CalendarClient
	mailer   InterviewMailer
}

func NewSchedulerService(db *gorm.DB, calendar CalendarClient, mailer InterviewMailer) *SchedulerService {
	return &SchedulerService{
		db:       db,
		calendar: calendar,
		mailer:   mailer,
	}
}

// ScheduleInterview moves a pending application to scheduled_interview,
// creates the calendar event and stores the returned meeting link.
//
// The status write is guarded by the current status, so a concurrent
// scheduling attempt against the same application loses the race and gets an
// InvalidTransitionError. If the calendar call fails the status write is
// reverted; if that revert also fails the operator is alerted for manual
// repair.
func (s *SchedulerService) ScheduleInterview(applicationID uint, proposedAt time.Time) (string, error) {
	var app models.Application
	if err := s.db.Preload("CleanerProfile").First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{ApplicationID: applicationID}
		}
		return "", &PersistenceError{Op: "load application", Err: err}
	}

	transition, err := ValidateTransition(app.Status, models.ApplicationStatusScheduledInterview)
	if err != nil {
		return "", err
	}
	effects := SideEffectsFor(transition)

	// Optimistic status check: only commit if the row is still pending.
	res := s.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", applicationID, transition.From).
		Updates(map[string]interface{}{
			"status":         transition.To,
			"interview_date": proposedAt,
		})
	if res.Error != nil {
		return "", &PersistenceError{Op: "schedule status update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		current := app.Status
		var latest models.Application
		if err := s.db.First(&latest, applicationID).Error; err == nil {
			current = latest.Status
		}
		return "", &InvalidTransitionError{From: current, To: transition.To}
	}

	if !effects.CreateCalendarEvent {
		return "", nil
	}

	meetingLink, calErr := s.calendar.CreateMeetEvent(app.CleanerProfile, proposedAt)
	if calErr != nil {
		return "", s.compensateSchedule(applicationID, calErr)
	}

	if effects.PersistMeetingLink {
		err := s.db.Model(&models.Application{}).
			Where("id = ?", applicationID).
			Update("meeting_link", meetingLink).Error
		if err != nil {
			// The event exists remotely; the interview stands. Do not roll back.
			utils.ErrorLogger.Printf("Meeting link write failed for application %d: %v", applicationID, err)
			return meetingLink, &LinkPersistenceError{MeetingLink: meetingLink, Err: err}
		}
	}

	if s.mailer != nil {
		if err := s.mailer.SendInterviewScheduled(app.CleanerProfile, proposedAt, meetingLink); err != nil {
			utils.ErrorLogger.Printf("Interview notification email failed for application %d: %v", applicationID, err)
		}
	}

	utils.InfoLogger.Printf("Interview scheduled for application %d at %s", applicationID, proposedAt.Format(time.RFC3339))
	return meetingLink, nil
}

// compensateSchedule reverts a committed status write after a failed
// calendar call. Best-effort: a failed revert is escalated with both errors
// and an operator notification.
func (s *SchedulerService) compensateSchedule(applicationID uint, original error) error {
	res := s.db.Model(&models.Application{}).
		Where("id = ?", applicationID).
		Updates(map[string]interface{}{
			"status":         models.ApplicationStatusPendingReview,
			"interview_date": nil,
			"meeting_link":   nil,
		})
	if res.Error != nil {
		compErr := &CompensationFailedError{Original: original, Compensation: res.Error}
		utils.ErrorLogger.Printf("Compensation failed for application %d: %v", applicationID, compErr)
		s.notifyManualRepair(applicationID, compErr)
		return compErr
	}

	utils.ErrorLogger.Printf("Calendar call failed for application %d, status reverted: %v", applicationID, original)
	return &ExternalServiceError{Service: "calendar", Err: original}
}

// notifyManualRepair records an operator notification for an application
// stuck in scheduled_interview without a meeting link.
func (s *SchedulerService) notifyManualRepair(applicationID uint, cause error) {
	title := "Manual repair required"
	notif := models.Notification{
		Title:   &title,
		Message: fmt.Sprintf("Application %d needs manual repair: %v", applicationID, cause),
	}
	if err := s.db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to record manual-repair notification for application %d: %v", applicationID, err)
	}
}

// CompleteInterview records the interview decision. A rejection also clears
// the cleaner profile's verified flag; both writes happen in one database
// transaction so the profile flag can never silently diverge from the
// application status.
func (s *SchedulerService) CompleteInterview(applicationID uint, decision string, notes string) error {
	var app models.Application
	if err := s.db.First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{ApplicationID: applicationID}
		}
		return &PersistenceError{Op: "load application", Err: err}
	}

	transition, err := ValidateTransition(app.Status, decision)
	if err != nil {
		return err
	}
	effects := SideEffectsFor(transition)

	tx := s.db.Begin()
	if tx.Error != nil {
		return &PersistenceError{Op: "begin completion", Err: tx.Error}
	}

	res := tx.Model(&models.Application{}).
		Where("id = ? AND status = ?", applicationID, transition.From).
		Updates(map[string]interface{}{
			"status":          transition.To,
			"interview_notes": notes,
		})
	if res.Error != nil {
		tx.Rollback()
		return &PersistenceError{Op: "completion status update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return &InvalidTransitionError{From: app.Status, To: transition.To}
	}

	if effects.ClearProfileVerified {
		err := tx.Model(&models.CleanerProfile{}).
			Where("id = ?", app.CleanerID).
			Update("verified", false).Error
		if err != nil {
			tx.Rollback()
			return &PersistenceError{Op: "clear profile verified flag", Err: err}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return &PersistenceError{Op: "commit completion", Err: err}
	}

	utils.InfoLogger.Printf("Application %d completed with decision %s", applicationID, decision)
	return nil
}
