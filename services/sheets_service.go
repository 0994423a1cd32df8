package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mintcleaning/booking-app/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// SheetsConfig holds Google Sheets export configuration. The OAuth client is
// shared with the calendar integration.
type SheetsConfig struct {
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	SpreadsheetID string
}

// SheetsService appends submitted cleaner applications to the recruitment
// spreadsheet so the hiring team can review them outside the admin console.
type SheetsService struct {
	config      *SheetsConfig
	httpClient  *http.Client
	baseURL     string
	tokenSource oauth2.TokenSource
}

var (
	sheetsService *SheetsService
	sheetsOnce    sync.Once
)

// GetSheetsService returns singleton instance of SheetsService
func GetSheetsService() *SheetsService {
	sheetsOnce.Do(func() {
		sheetsService = &SheetsService{
			config: &SheetsConfig{
				ClientID:      os.Getenv("GOOGLE_CALENDAR_CLIENT_ID"),
				ClientSecret:  os.Getenv("GOOGLE_CALENDAR_CLIENT_SECRET"),
				RefreshToken:  os.Getenv("GOOGLE_CALENDAR_REFRESH_TOKEN"),
				SpreadsheetID: os.Getenv("GOOGLE_SHEET_ID"),
			},
			httpClient: &http.Client{
				Timeout: 15 * time.Second,
			},
			baseURL: "https://sheets.googleapis.com/v4",
		}
	})
	return sheetsService
}

// ValidateConfig validates Google Sheets configuration
func (ss *SheetsService) ValidateConfig() error {
	if ss.config.SpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is not set")
	}
	if ss.config.ClientID == "" || ss.config.ClientSecret == "" || ss.config.RefreshToken == "" {
		return fmt.Errorf("Google OAuth credentials are not set")
	}
	return nil
}

func (ss *SheetsService) getTokenSource() oauth2.TokenSource {
	if ss.tokenSource == nil {
		conf := &oauth2.Config{
			ClientID:     ss.config.ClientID,
			ClientSecret: ss.config.ClientSecret,
			Endpoint:     google.Endpoint,
		}
		ss.tokenSource = conf.TokenSource(context.Background(), &oauth2.Token{
			RefreshToken: ss.config.RefreshToken,
		})
	}
	return ss.tokenSource
}

// AppendApplication adds one row per submitted application, mirroring the
// cleaner profile columns.
func (ss *SheetsService) AppendApplication(app models.Application, profile models.CleanerProfile) error {
	if err := ss.ValidateConfig(); err != nil {
		return err
	}

	token, err := ss.getTokenSource().Token()
	if err != nil {
		return fmt.Errorf("failed to refresh sheets access token: %w", err)
	}

	row := []interface{}{
		app.ID,
		profile.FirstName,
		profile.LastName,
		profile.MobileNumber,
		profile.Email,
		profile.Postcode,
		profile.YearsExperience,
		strings.Join(profile.CleaningTypes, ", "),
		profile.ExperienceDescription,
		profile.DesiredHoursPerWeek,
		strings.Join(profile.AvailableDays, ", "),
		profile.CommitmentLength,
		app.Status,
		app.CreatedAt.Format(time.RFC3339),
	}

	payload, err := json.Marshal(map[string]interface{}{
		"values": [][]interface{}{row},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sheet row: %w", err)
	}

	url := fmt.Sprintf("%s/spreadsheets/%s/values/A1:append?valueInputOption=RAW", ss.baseURL, ss.config.SpreadsheetID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ss.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
