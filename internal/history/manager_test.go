package history

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"docagent/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.GenerationFeedback{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewManager(db, time.Minute)
}

func storeContext(m *Manager, requestID string) {
	m.StoreRequestContext(&models.RequestContext{
		RequestID:      requestID,
		Style:          "google",
		SourceCode:     "def f():\n    pass",
		Prompt:         "prompt for " + requestID,
		DocumentedCode: "def f():\n    \"\"\"Doc.\"\"\"\n    pass",
		ModelName:      "gemini-2.5-flash",
		Timestamp:      time.Now(),
	})
}

func TestSubmitFeedback(t *testing.T) {
	m := newTestManager(t)
	storeContext(m, "req-1")

	if err := m.SubmitFeedback("req-1", true); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	// context is consumed after feedback
	if err := m.SubmitFeedback("req-1", true); err == nil {
		t.Fatal("expected error for consumed context")
	}

	records, err := m.GetUnexportedFeedback(0)
	if err != nil {
		t.Fatalf("GetUnexportedFeedback failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].IsPositive || records[0].Style != "google" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestSubmitFeedbackUnknownRequest(t *testing.T) {
	m := newTestManager(t)

	if err := m.SubmitFeedback("missing", true); err == nil {
		t.Fatal("expected error for missing context")
	}
}

func TestExportToJSONL(t *testing.T) {
	m := newTestManager(t)

	storeContext(m, "req-1")
	storeContext(m, "req-2")
	if err := m.SubmitFeedback("req-1", true); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}
	if err := m.SubmitFeedback("req-2", false); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	records, err := m.GetUnexportedFeedback(0)
	if err != nil {
		t.Fatalf("GetUnexportedFeedback failed: %v", err)
	}

	jsonl, err := m.ExportToJSONL(records)
	if err != nil {
		t.Fatalf("ExportToJSONL failed: %v", err)
	}

	// only the positive example is exported
	lines := strings.Split(strings.TrimSpace(string(jsonl)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 JSONL line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "prompt for req-1") {
		t.Fatalf("expected prompt in training data, got %s", lines[0])
	}
	if !strings.Contains(lines[0], `"role":"model"`) {
		t.Fatalf("expected model role in training data, got %s", lines[0])
	}
}

func TestMarkAsExported(t *testing.T) {
	m := newTestManager(t)
	storeContext(m, "req-1")
	if err := m.SubmitFeedback("req-1", true); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	records, err := m.GetUnexportedFeedback(0)
	if err != nil {
		t.Fatalf("GetUnexportedFeedback failed: %v", err)
	}

	ids := make([]uint, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	if err := m.MarkAsExported(ids); err != nil {
		t.Fatalf("MarkAsExported failed: %v", err)
	}

	remaining, err := m.GetUnexportedFeedback(0)
	if err != nil {
		t.Fatalf("GetUnexportedFeedback failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no unexported records, got %d", len(remaining))
	}
}

func TestGetStats(t *testing.T) {
	m := newTestManager(t)
	storeContext(m, "req-1")
	storeContext(m, "req-2")
	if err := m.SubmitFeedback("req-1", true); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	stats, err := m.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats["total_count"].(int64) != 1 {
		t.Fatalf("expected total_count 1, got %v", stats["total_count"])
	}
	if stats["positive_count"].(int64) != 1 {
		t.Fatalf("expected positive_count 1, got %v", stats["positive_count"])
	}
	if stats["cached_contexts"].(int) != 1 {
		t.Fatalf("expected 1 cached context, got %v", stats["cached_contexts"])
	}
}

func TestGetFeedbackSince(t *testing.T) {
	m := newTestManager(t)
	storeContext(m, "req-1")
	if err := m.SubmitFeedback("req-1", true); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	records, err := m.GetFeedbackSince(time.Now().Add(-time.Hour), 0)
	if err != nil {
		t.Fatalf("GetFeedbackSince failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	none, err := m.GetFeedbackSince(time.Now().Add(time.Hour), 0)
	if err != nil {
		t.Fatalf("GetFeedbackSince failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no records, got %d", len(none))
	}
}
