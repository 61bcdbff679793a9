package models

import (
	"time"

	"gorm.io/gorm"
)

// GenerationFeedback stores user feedback on generated docstrings for
// fine-tuning. Note: user identifiers are intentionally excluded.
type GenerationFeedback struct {
	gorm.Model
	RequestID      string     `gorm:"uniqueIndex;not null" json:"request_id"`
	Style          string     `gorm:"not null" json:"style"`
	SourceCode     string     `gorm:"type:text;not null" json:"source_code"`
	Prompt         string     `gorm:"type:text;not null" json:"prompt"`
	DocumentedCode string     `gorm:"type:text;not null" json:"documented_code"`
	IsPositive     bool       `gorm:"not null" json:"is_positive"`
	ModelName      string     `gorm:"not null" json:"model_name"`
	FeedbackAt     time.Time  `gorm:"not null" json:"feedback_at"`
	Exported       bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt     *time.Time `json:"exported_at"`
}

// TrainingDataPoint is a single training example in the JSONL format Gemini
// fine-tuning expects.
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}

// RequestContext keeps a request/response pair around long enough for the
// user to submit feedback. Stored in-memory with TTL, not in the database.
type RequestContext struct {
	RequestID      string
	Style          string
	SourceCode     string
	Prompt         string
	DocumentedCode string
	ModelName      string
	Timestamp      time.Time
}
