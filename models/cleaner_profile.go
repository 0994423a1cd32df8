package models

import (
	"time"

	"github.com/lib/pq"
)

type CleanerProfile struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	FirstName             string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string         `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber          string         `gorm:"type:varchar(20);not null" json:"mobile_number"`
	Email                 string         `gorm:"type:varchar(255);not null" json:"email"`
	Gender                *string        `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Postcode              string         `gorm:"type:varchar(10);not null" json:"postcode"`
	YearsExperience       string         `gorm:"type:varchar(25);not null" json:"years_experience"`
	CleaningTypes         pq.StringArray `gorm:"type:text[]" json:"cleaning_types"`
	ExperienceDescription string         `gorm:"type:text;not null" json:"experience_description"`
	DesiredHoursPerWeek   int            `gorm:"not null" json:"desired_hours_per_week"`
	AvailableDays         pq.StringArray `gorm:"type:text[]" json:"available_days"`
	CommitmentLength      string         `gorm:"type:varchar(25);not null" json:"commitment_length"`
	Verified              bool           `gorm:"not null;default:false" json:"verified"`
	BackgroundCheckDate   *time.Time     `json:"background_check_date,omitempty"`
	Rating                *float64       `json:"rating,omitempty"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null" json:"updated_at"`
}

func (p *CleanerProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}
