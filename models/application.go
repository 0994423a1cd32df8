package models

import (
	"time"
)

const (
	ApplicationStatusPendingReview      = "pending_review"
	ApplicationStatusScheduledInterview = "scheduled_interview"
	ApplicationStatusInterviewCompleted = "interview_completed"
	ApplicationStatusVerified           = "verified"
	ApplicationStatusRejected           = "rejected"
)

type Application struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CleanerID      uint           `gorm:"not null;index" json:"cleaner_id"`
	CleanerProfile CleanerProfile `gorm:"foreignKey:CleanerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"cleaner_profile"`
	Status         string         `gorm:"type:varchar(25);not null;default:'pending_review'" json:"status"`
	InterviewDate  *time.Time     `json:"interview_date,omitempty"`
	InterviewNotes *string        `gorm:"type:text" json:"interview_notes,omitempty"`
	MeetingLink    *string        `gorm:"type:varchar(255)" json:"meeting_link,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

// IsTerminal reports whether no further transitions are permitted.
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusVerified || a.Status == ApplicationStatusRejected
}
