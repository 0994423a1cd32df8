package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mintcleaning/booking-app/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Interviews are always booked as a fixed one-hour slot.
const interviewDuration = 60 * time.Minute

// CalendarConfig holds Google Calendar configuration
type CalendarConfig struct {
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	OrganizerEmail string
	CalendarID     string
}

// CalendarService creates Google Meet interview events through the Calendar
// API, authenticating with the offline refresh token of the organizer.
type CalendarService struct {
	config      *CalendarConfig
	httpClient  *http.Client
	baseURL     string
	tokenSource oauth2.TokenSource
}

var (
	calendarService *CalendarService
	calendarOnce    sync.Once
)

// GetCalendarService returns singleton instance of CalendarService
func GetCalendarService() *CalendarService {
	calendarOnce.Do(func() {
		config := &CalendarConfig{
			ClientID:       os.Getenv("GOOGLE_CALENDAR_CLIENT_ID"),
			ClientSecret:   os.Getenv("GOOGLE_CALENDAR_CLIENT_SECRET"),
			RefreshToken:   os.Getenv("GOOGLE_CALENDAR_REFRESH_TOKEN"),
			OrganizerEmail: os.Getenv("ORGANIZER_EMAIL"),
			CalendarID:     os.Getenv("GOOGLE_CALENDAR_ID"),
		}
		if config.CalendarID == "" {
			config.CalendarID = "primary"
		}

		calendarService = &CalendarService{
			config: config,
			httpClient: &http.Client{
				Timeout: 30 * time.Second,
			},
			baseURL: "https://www.googleapis.com/calendar/v3",
		}
	})
	return calendarService
}

// ValidateConfig validates Google Calendar configuration
func (cs *CalendarService) ValidateConfig() error {
	if cs.config.ClientID == "" {
		return fmt.Errorf("GOOGLE_CALENDAR_CLIENT_ID is not set")
	}
	if cs.config.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CALENDAR_CLIENT_SECRET is not set")
	}
	if cs.config.RefreshToken == "" {
		return fmt.Errorf("GOOGLE_CALENDAR_REFRESH_TOKEN is not set")
	}
	if cs.config.OrganizerEmail == "" {
		return fmt.Errorf("ORGANIZER_EMAIL is not set")
	}
	return nil
}

type calendarEventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type calendarAttendee struct {
	Email string `json:"email"`
}

type calendarEventRequest struct {
	Summary        string             `json:"summary"`
	Description    string             `json:"description"`
	Start          calendarEventTime  `json:"start"`
	End            calendarEventTime  `json:"end"`
	Attendees      []calendarAttendee `json:"attendees"`
	ConferenceData struct {
		CreateRequest struct {
			RequestID             string `json:"requestId"`
			ConferenceSolutionKey struct {
				Type string `json:"type"`
			} `json:"conferenceSolutionKey"`
		} `json:"createRequest"`
	} `json:"conferenceData"`
}

type calendarEventResponse struct {
	ID          string `json:"id"`
	HangoutLink string `json:"hangoutLink"`
	Status      string `json:"status"`
}

func (cs *CalendarService) getTokenSource() oauth2.TokenSource {
	if cs.tokenSource == nil {
		conf := &oauth2.Config{
			ClientID:     cs.config.ClientID,
			ClientSecret: cs.config.ClientSecret,
			Endpoint:     google.Endpoint,
		}
		cs.tokenSource = conf.TokenSource(context.Background(), &oauth2.Token{
			RefreshToken: cs.config.RefreshToken,
		})
	}
	return cs.tokenSource
}

// CreateMeetEvent books a one-hour interview slot with the applicant and the
// organizer as attendees and returns the generated Meet link.
func (cs *CalendarService) CreateMeetEvent(profile models.CleanerProfile, startTime time.Time) (string, error) {
	if err := cs.ValidateConfig(); err != nil {
		return "", err
	}

	token, err := cs.getTokenSource().Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh calendar access token: %w", err)
	}

	event := calendarEventRequest{
		Summary:     fmt.Sprintf("Interview with %s", profile.FullName()),
		Description: "Cleaner interview for Mint Cleaning Services",
		Start: calendarEventTime{
			DateTime: startTime.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: calendarEventTime{
			DateTime: startTime.Add(interviewDuration).UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: []calendarAttendee{
			{Email: cs.config.OrganizerEmail},
			{Email: profile.Email},
		},
	}
	event.ConferenceData.CreateRequest.RequestID = uuid.NewString()
	event.ConferenceData.CreateRequest.ConferenceSolutionKey.Type = "hangoutsMeet"

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal calendar event: %w", err)
	}

	url := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1&sendUpdates=all", cs.baseURL, cs.config.CalendarID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := cs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read calendar response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar API returned status %d: %s", resp.StatusCode, string(body))
	}

	var created calendarEventResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("failed to decode calendar response: %w", err)
	}
	if created.HangoutLink == "" {
		return "", fmt.Errorf("calendar event %s created without a meet link", created.ID)
	}

	return created.HangoutLink, nil
}
