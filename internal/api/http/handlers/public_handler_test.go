package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/loan-platform/internal/api/http"
	"github.com/spec-kit/loan-platform/internal/api/http/handlers"
	"github.com/spec-kit/loan-platform/internal/observability"
	"github.com/spec-kit/loan-platform/internal/service"
)

func newPublicApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	public := handlers.NewPublicHandler(service.NewAnalyticsService(service.AnalyticsDependencies{}))
	api := app.Group("/api")
	api.Get("/public/partners", public.Partners)
	api.Post("/emi/calculate", public.CalculateEMI)
	api.Post("/contact", public.Contact)
	return app
}

func TestPartnersEndpoint(t *testing.T) {
	app := newPublicApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/public/partners", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var partners []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&partners); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(partners) == 0 {
		t.Fatal("expected at least one partner")
	}
	if partners[0]["name"] == "" || partners[0]["category"] == "" {
		t.Fatalf("unexpected partner shape: %v", partners[0])
	}
}

func TestCalculateEMIEndpoint(t *testing.T) {
	app := newPublicApp(t)

	body := `{"principal":100000,"annual_rate":12,"months":12}`
	req, _ := http.NewRequest(http.MethodPost, "/api/emi/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result service.EMIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.EMI < 8884 || result.EMI > 8886 {
		t.Fatalf("unexpected emi %v", result.EMI)
	}
}

func TestCalculateEMIEndpointRejectsBadInput(t *testing.T) {
	app := newPublicApp(t)

	body := `{"principal":0,"annual_rate":12,"months":12}`
	req, _ := http.NewRequest(http.MethodPost, "/api/emi/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestContactEndpoint(t *testing.T) {
	app := newPublicApp(t)

	form := url.Values{}
	form.Set("name", "Asha")
	form.Set("email", "asha@example.com")
	form.Set("message", "I would like to know more about home loans.")

	req, _ := http.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	payload, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(payload), "asha@example.com") {
		t.Fatalf("confirmation should echo the email, got %s", payload)
	}
}

func TestContactEndpointRejectsShortMessage(t *testing.T) {
	app := newPublicApp(t)

	form := url.Values{}
	form.Set("name", "Asha")
	form.Set("email", "asha@example.com")
	form.Set("message", "hi")

	req, _ := http.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
