package models

import (
	"time"
)

const (
	FrequencyMoreThanWeekly = "more_than_weekly"
	FrequencyWeekly         = "weekly"
	FrequencyBiweekly       = "biweekly"
	FrequencyOneOff         = "one_off"
)

// Quote is a customer's cleaning request snapshot. Write-once: the admin
// console only reads these.
type Quote struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Reference             string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	Postcode              string    `gorm:"type:varchar(10);not null" json:"postcode"`
	Bedrooms              int       `gorm:"not null" json:"bedrooms"`
	Bathrooms             int       `gorm:"not null" json:"bathrooms"`
	Ironing               bool      `gorm:"not null;default:false" json:"ironing"`
	Laundry               bool      `gorm:"not null;default:false" json:"laundry"`
	InsideWindows         bool      `gorm:"not null;default:false" json:"inside_windows"`
	InsideFridge          bool      `gorm:"not null;default:false" json:"inside_fridge"`
	InsideOven            bool      `gorm:"not null;default:false" json:"inside_oven"`
	Duration              float64   `gorm:"type:decimal(3,1);not null" json:"duration"`
	BringCleaningProducts bool      `gorm:"not null;default:false" json:"bring_cleaning_products"`
	Frequency             string    `gorm:"type:varchar(20);not null" json:"frequency"`
	Email                 string    `gorm:"type:varchar(255);not null" json:"email"`
	CreatedAt             time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time `gorm:"not null" json:"updated_at"`
}
