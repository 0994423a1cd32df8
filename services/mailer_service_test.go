package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testMailerService(serverURL string, client *http.Client) *MailerService {
	return &MailerService{
		config: &MailerConfig{
			APIKey:      "re_test_key",
			FromAddress: "Mint Cleaning <notifications@mint-cleaning.com>",
			AdminEmail:  "admin@mint-cleaning.com",
		},
		httpClient: client,
		baseURL:    serverURL,
	}
}

func TestSendInterviewScheduled(t *testing.T) {
	var gotEmail emailRequest
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotEmail); err != nil {
			t.Errorf("failed to decode email payload: %v", err)
		}
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	ms := testMailerService(server.URL, server.Client())
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	err := ms.SendInterviewScheduled(testProfile(), start, "https://meet.google.com/abc-defg-hij")
	if err != nil {
		t.Fatalf("SendInterviewScheduled() error = %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if gotPath != "/emails" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotEmail.To) != 1 || gotEmail.To[0] != "jamie@example.com" {
		t.Errorf("recipients = %v, want the applicant", gotEmail.To)
	}
	if !strings.Contains(gotEmail.HTML, "https://meet.google.com/abc-defg-hij") {
		t.Error("email body must carry the meeting link")
	}
}

func TestSendNewApplicationAlert(t *testing.T) {
	var gotEmail emailRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotEmail); err != nil {
			t.Errorf("failed to decode email payload: %v", err)
		}
		w.Write([]byte(`{"id":"email-2"}`))
	}))
	defer server.Close()

	ms := testMailerService(server.URL, server.Client())
	if err := ms.SendNewApplicationAlert(testProfile()); err != nil {
		t.Fatalf("SendNewApplicationAlert() error = %v", err)
	}

	if len(gotEmail.To) != 1 || gotEmail.To[0] != "admin@mint-cleaning.com" {
		t.Errorf("recipients = %v, want the admin inbox", gotEmail.To)
	}
	if !strings.Contains(gotEmail.Subject, "Jamie Doe") {
		t.Errorf("subject = %q, want the applicant name", gotEmail.Subject)
	}
}

func TestSendEmailAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	ms := testMailerService(server.URL, server.Client())
	err := ms.SendNewApplicationAlert(testProfile())
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q should carry the status code", err)
	}
}

func TestMailerValidateConfig(t *testing.T) {
	ms := &MailerService{config: &MailerConfig{APIKey: "key", AdminEmail: "admin@mint-cleaning.com"}}
	if err := ms.ValidateConfig(); err != nil {
		t.Errorf("ValidateConfig() error = %v", err)
	}

	ms = &MailerService{config: &MailerConfig{AdminEmail: "admin@mint-cleaning.com"}}
	if err := ms.ValidateConfig(); err == nil {
		t.Error("expected error when RESEND_API_KEY is missing")
	}
}
