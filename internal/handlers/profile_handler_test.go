package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
	"github.com/EricStrohmaier/motivations-bot/internal/services"
)

type stubProfileService struct {
	setupResult  *models.UserProfile
	setupErr     error
	getResult    *models.UserProfile
	getErr       error
	timezoneErr  error
	checkInsErr  error
	messageErr   error
	lastUserID   int64
	lastUsername string
	lastTimezone string
	lastEnabled  bool
	lastMessage  string
	cleared      bool
	reset        bool
}

func (s *stubProfileService) Setup(_ context.Context, userID int64, username string) (*models.UserProfile, error) {
	s.lastUserID = userID
	s.lastUsername = username
	return s.setupResult, s.setupErr
}

func (s *stubProfileService) Get(_ context.Context, userID int64) (*models.UserProfile, error) {
	s.lastUserID = userID
	return s.getResult, s.getErr
}

func (s *stubProfileService) SetTimezone(_ context.Context, userID int64, timezone string) error {
	s.lastUserID = userID
	s.lastTimezone = timezone
	return s.timezoneErr
}

func (s *stubProfileService) SetCheckIns(_ context.Context, userID int64, enabled bool) error {
	s.lastUserID = userID
	s.lastEnabled = enabled
	return s.checkInsErr
}

func (s *stubProfileService) AddCustomMessage(_ context.Context, userID int64, message string) error {
	s.lastUserID = userID
	s.lastMessage = message
	return s.messageErr
}

func (s *stubProfileService) ClearCustomMessages(_ context.Context, userID int64) error {
	s.lastUserID = userID
	s.cleared = true
	return nil
}

func (s *stubProfileService) ResetCustomMessages(_ context.Context, userID int64) error {
	s.lastUserID = userID
	s.reset = true
	return nil
}

func profileTestApp(service *stubProfileService) *fiber.App {
	handler := NewProfileHandler(service)
	app := fiber.New()
	app.Post("/api/v1/setup", handler.Setup)
	app.Get("/api/v1/users/:id/profile", handler.GetProfile)
	app.Put("/api/v1/users/:id/timezone", handler.SetTimezone)
	app.Put("/api/v1/users/:id/checkins", handler.SetCheckIns)
	app.Post("/api/v1/users/:id/messages", handler.AddCustomMessage)
	app.Get("/api/v1/users/:id/messages", handler.ListCustomMessages)
	app.Delete("/api/v1/users/:id/messages", handler.ClearCustomMessages)
	app.Post("/api/v1/users/:id/messages/reset", handler.ResetCustomMessages)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSetupCreatesProfile(t *testing.T) {
	service := &stubProfileService{setupResult: models.NewUserProfile(42, "taylor")}
	app := profileTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/setup",
		`{"user_id": 42, "username": "taylor"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 || service.lastUsername != "taylor" {
		t.Fatalf("service call: %d %q", service.lastUserID, service.lastUsername)
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if profile.UserID != 42 || profile.Timezone != "UTC" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestSetupRejectsMissingUserID(t *testing.T) {
	app := profileTestApp(&stubProfileService{})
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/setup", `{"username": "x"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	service := &stubProfileService{getErr: services.ErrUserNotFound}
	app := profileTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSetTimezone(t *testing.T) {
	service := &stubProfileService{}
	app := profileTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/users/42/timezone",
		`{"timezone": "Asia/Tokyo"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastTimezone != "Asia/Tokyo" {
		t.Errorf("timezone = %q", service.lastTimezone)
	}
}

func TestSetTimezoneInvalidZone(t *testing.T) {
	service := &stubProfileService{timezoneErr: services.ErrInvalidTimezone}
	app := profileTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/users/42/timezone",
		`{"timezone": "Mars/Olympus_Mons"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSetCheckIns(t *testing.T) {
	service := &stubProfileService{}
	app := profileTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/users/42/checkins",
		`{"enabled": false}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 || service.lastEnabled {
		t.Errorf("service call: user=%d enabled=%v", service.lastUserID, service.lastEnabled)
	}
}

func TestCustomMessageEndpoints(t *testing.T) {
	profile := models.NewUserProfile(42, "taylor")
	profile.CustomMotivationMessages = []string{"one", "two"}
	service := &stubProfileService{getResult: profile}
	app := profileTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/42/messages",
		`{"message": "keep going"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || service.lastMessage != "keep going" {
		t.Errorf("add: status=%d message=%q", resp.StatusCode, service.lastMessage)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42/messages", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var body struct {
		Messages []string `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	resp.Body.Close()
	if len(body.Messages) != 2 {
		t.Errorf("messages = %v", body.Messages)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/users/42/messages", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if !service.cleared {
		t.Error("clear endpoint did not reach the service")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/42/messages/reset", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if !service.reset {
		t.Error("reset endpoint did not reach the service")
	}
}
