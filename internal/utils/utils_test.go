package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeStyle("  Google "); got != "google" {
		t.Fatalf("NormalizeStyle: expected google, got %s", got)
	}

	if got := NormalizeFilename(" snippet.py "); got != "snippet.py" {
		t.Fatalf("NormalizeFilename: expected snippet.py, got %s", got)
	}
}

func TestJSONHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	payload := map[string]string{"hello": "world"}

	JSON(rec, http.StatusCreated, payload)

	if rec.Code != http.StatusCreated {
		t.Fatalf("JSON: expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("JSON: expected content-type application/json, got %s", contentType)
	}

	var got map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("JSON decode failed: %v", err)
	}
	if got["hello"] != "world" {
		t.Fatalf("JSON body mismatch: %+v", got)
	}

	rec2 := httptest.NewRecorder()
	WriteJSON(rec2, http.StatusAccepted, payload)

	if rec2.Code != http.StatusAccepted {
		t.Fatalf("WriteJSON: expected status %d, got %d", http.StatusAccepted, rec2.Code)
	}

	if !strings.Contains(rec2.Body.String(), `"hello":"world"`) {
		t.Fatalf("WriteJSON: expected body to contain payload, got %s", rec2.Body.String())
	}
}
