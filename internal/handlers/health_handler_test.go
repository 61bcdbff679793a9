package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"text/template"

	"docagent/internal/config"
)

func TestHealthzHandler(t *testing.T) {
	handler := NewHealthHandler(&mockProvider{}, &mockPromptManager{}, &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.HealthzHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["service"] != "docagent" {
		t.Fatalf("unexpected service name: %s", body["service"])
	}
}

func TestReadyzHandlerReady(t *testing.T) {
	handler := NewHealthHandler(&mockProvider{}, &mockPromptManager{}, &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "ready" {
		t.Fatalf("expected ready, got %s", resp.Status)
	}
}

func TestReadyzHandlerMissingProvider(t *testing.T) {
	handler := NewHealthHandler(nil, &mockPromptManager{}, &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestReadyzHandlerNoTemplates(t *testing.T) {
	handler := NewHealthHandler(&mockProvider{}, &mockPromptManager{
		getTemplatesFn: func() map[string]map[string]*template.Template {
			return map[string]map[string]*template.Template{}
		},
	}, &config.Config{Provider: "gemini"})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
