package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"docagent/internal/history"

	"github.com/robfig/cron/v3"
)

// ExporterJob periodically exports positive generation feedback as JSONL
// training data for fine-tuning.
type ExporterJob struct {
	historyManager *history.Manager
	config         *ExporterConfig
	cron           *cron.Cron
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

// NewExporterJob creates a new exporter job
func NewExporterJob(historyManager *history.Manager, config *ExporterConfig) *ExporterJob {
	return &ExporterJob{
		historyManager: historyManager,
		config:         config,
		cron:           cron.New(),
	}
}

// Start begins the scheduled export job
func (ej *ExporterJob) Start() error {
	if !ej.config.ExportEnabled {
		log.Println("Feedback export is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting feedback exporter with schedule: %s", ej.config.Schedule)

	_, err := ej.cron.AddFunc(ej.config.Schedule, func() {
		if err := ej.RunExport(); err != nil {
			log.Printf("Export job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	ej.cron.Start()
	log.Println("Feedback exporter started successfully")

	return nil
}

// Stop stops the scheduled export job
func (ej *ExporterJob) Stop() {
	if ej.cron != nil {
		ej.cron.Stop()
		log.Println("Feedback exporter stopped")
	}
}

// RunExport performs a single export run
func (ej *ExporterJob) RunExport() error {
	log.Println("Starting feedback export job...")

	records, err := ej.historyManager.GetUnexportedFeedback(0) // no limit
	if err != nil {
		return fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	if len(records) == 0 {
		log.Println("No unexported feedback found")
		return nil
	}

	log.Printf("Found %d unexported feedback records", len(records))

	jsonlData, err := ej.historyManager.ExportToJSONL(records)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	ids := make([]uint, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	positiveCount := 0
	for _, record := range records {
		if record.IsPositive {
			positiveCount++
		}
	}

	// negative feedback never becomes training data; mark it exported so it
	// is not reprocessed on the next run
	if positiveCount == 0 {
		log.Println("No positive feedback to export, skipping file creation")
		return ej.historyManager.MarkAsExported(ids)
	}

	if err := os.MkdirAll(ej.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("training_%s.jsonl", time.Now().Format("20060102_150405"))
	path := filepath.Join(ej.config.ExportDir, filename)

	if err := os.WriteFile(path, jsonlData, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	log.Printf("Wrote %d training examples to %s", positiveCount, path)

	return ej.historyManager.MarkAsExported(ids)
}
