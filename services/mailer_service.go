package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mintcleaning/booking-app/models"
)

// MailerConfig holds Resend configuration
type MailerConfig struct {
	APIKey      string
	FromAddress string
	AdminEmail  string
}

// MailerService sends transactional email through the Resend API.
type MailerService struct {
	config     *MailerConfig
	httpClient *http.Client
	baseURL    string
}

var (
	mailerService *MailerService
	mailerOnce    sync.Once
)

// GetMailerService returns singleton instance of MailerService
func GetMailerService() *MailerService {
	mailerOnce.Do(func() {
		config := &MailerConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
			AdminEmail:  os.Getenv("ADMIN_EMAIL"),
		}
		if config.FromAddress == "" {
			config.FromAddress = "Mint Cleaning <notifications@mint-cleaning.com>"
		}

		mailerService = &MailerService{
			config: config,
			httpClient: &http.Client{
				Timeout: 15 * time.Second,
			},
			baseURL: "https://api.resend.com",
		}
	})
	return mailerService
}

// ValidateConfig validates Resend configuration
func (ms *MailerService) ValidateConfig() error {
	if ms.config.APIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not set")
	}
	if ms.config.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is not set")
	}
	return nil
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendInterviewScheduled tells the applicant when their interview is and how
// to join it.
func (ms *MailerService) SendInterviewScheduled(profile models.CleanerProfile, startTime time.Time, meetingLink string) error {
	if err := ms.ValidateConfig(); err != nil {
		return err
	}

	html := fmt.Sprintf(
		"<h1>Hello %s,</h1>"+
			"<p>Your interview has been scheduled for %s.</p>"+
			"<p>Join the call here: <a href=%q>%s</a></p>"+
			"<p>Best regards,<br>The Mint Cleaning Team</p>",
		profile.FirstName,
		startTime.Format("Monday, 2 January 2006 at 15:04 MST"),
		meetingLink, meetingLink,
	)

	return ms.send(emailRequest{
		From:    ms.config.FromAddress,
		To:      []string{profile.Email},
		Subject: "Your Interview Has Been Scheduled",
		HTML:    html,
	})
}

// SendNewApplicationAlert notifies the admin inbox about a freshly submitted
// cleaner application.
func (ms *MailerService) SendNewApplicationAlert(profile models.CleanerProfile) error {
	if err := ms.ValidateConfig(); err != nil {
		return err
	}

	lines := []string{
		"<h1>New Cleaner Application Received</h1>",
		fmt.Sprintf("<p>Name: %s</p>", profile.FullName()),
		fmt.Sprintf("<p>Email: %s</p>", profile.Email),
		fmt.Sprintf("<p>Mobile: %s</p>", profile.MobileNumber),
		fmt.Sprintf("<p>Postcode: %s</p>", profile.Postcode),
		fmt.Sprintf("<p>Years of experience: %s</p>", profile.YearsExperience),
		fmt.Sprintf("<p>Cleaning types: %s</p>", strings.Join(profile.CleaningTypes, ", ")),
		fmt.Sprintf("<p>Available days: %s</p>", strings.Join(profile.AvailableDays, ", ")),
		fmt.Sprintf("<p>Desired hours per week: %d</p>", profile.DesiredHoursPerWeek),
		fmt.Sprintf("<p>Commitment length: %s</p>", profile.CommitmentLength),
	}

	return ms.send(emailRequest{
		From:    ms.config.FromAddress,
		To:      []string{ms.config.AdminEmail},
		Subject: fmt.Sprintf("New Cleaner Application: %s", profile.FullName()),
		HTML:    strings.Join(lines, "\n"),
	})
}

func (ms *MailerService) send(email emailRequest) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, ms.baseURL+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ms.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ms.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
