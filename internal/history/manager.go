package history

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"docagent/internal/models"

	"gorm.io/gorm"
)

// Manager handles generation feedback storage and export
type Manager struct {
	db           *gorm.DB
	contextCache *ContextCache
}

// NewManager creates a new history manager
func NewManager(db *gorm.DB, cacheTTL time.Duration) *Manager {
	return &Manager{
		db:           db,
		contextCache: NewContextCache(cacheTTL),
	}
}

// StoreRequestContext caches a generation context for later feedback
func (m *Manager) StoreRequestContext(ctx *models.RequestContext) {
	m.contextCache.Set(ctx.RequestID, ctx)
	log.Printf("Stored generation context: %s (style: %s)", ctx.RequestID, ctx.Style)
}

// SubmitFeedback stores user feedback for a generation
func (m *Manager) SubmitFeedback(requestID string, isPositive bool) error {
	ctx, exists := m.contextCache.Get(requestID)
	if !exists {
		return fmt.Errorf("generation context not found or expired: %s", requestID)
	}

	record := &models.GenerationFeedback{
		RequestID:      requestID,
		Style:          ctx.Style,
		SourceCode:     ctx.SourceCode,
		Prompt:         ctx.Prompt,
		DocumentedCode: ctx.DocumentedCode,
		IsPositive:     isPositive,
		ModelName:      ctx.ModelName,
		FeedbackAt:     time.Now(),
		Exported:       false,
	}

	if err := m.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	// Remove from cache after successful storage
	m.contextCache.Delete(requestID)

	log.Printf("Stored feedback: request=%s, positive=%v, style=%s", requestID, isPositive, ctx.Style)

	return nil
}

// GetUnexportedFeedback retrieves feedback that hasn't been exported yet
func (m *Manager) GetUnexportedFeedback(limit int) ([]models.GenerationFeedback, error) {
	var records []models.GenerationFeedback

	query := m.db.Where("exported = ?", false).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	return records, nil
}

// GetFeedbackSince retrieves feedback since a specific time
func (m *Manager) GetFeedbackSince(since time.Time, limit int) ([]models.GenerationFeedback, error) {
	var records []models.GenerationFeedback

	query := m.db.Where("feedback_at >= ?", since).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback since %v: %w", since, err)
	}

	return records, nil
}

// MarkAsExported marks feedback records as exported
func (m *Manager) MarkAsExported(ids []uint) error {
	now := time.Now()
	result := m.db.Model(&models.GenerationFeedback{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark feedback as exported: %w", result.Error)
	}

	log.Printf("Marked %d feedback records as exported", result.RowsAffected)
	return nil
}

// ExportToJSONL exports feedback to JSONL format for Gemini fine-tuning
// Only exports positive feedback (thumbs up) as training examples
func (m *Manager) ExportToJSONL(records []models.GenerationFeedback) ([]byte, error) {
	var jsonlLines []string

	for _, record := range records {
		if !record.IsPositive {
			continue
		}

		dataPoint := models.TrainingDataPoint{
			Contents: []models.TrainingContent{
				{
					Role: "user",
					Parts: []models.TrainingPart{
						{Text: record.Prompt},
					},
				},
				{
					Role: "model",
					Parts: []models.TrainingPart{
						{Text: record.DocumentedCode},
					},
				},
			},
		}

		jsonBytes, err := json.Marshal(dataPoint)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal training data: %w", err)
		}

		jsonlLines = append(jsonlLines, string(jsonBytes))
	}

	jsonlData := []byte{}
	for i, line := range jsonlLines {
		jsonlData = append(jsonlData, []byte(line)...)
		if i < len(jsonlLines)-1 {
			jsonlData = append(jsonlData, '\n')
		}
	}

	log.Printf("Exported %d positive feedback examples to JSONL (%d total feedback records)", len(jsonlLines), len(records))

	return jsonlData, nil
}

// GetStats returns statistics about stored feedback
func (m *Manager) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalCount int64
	if err := m.db.Model(&models.GenerationFeedback{}).Count(&totalCount).Error; err != nil {
		return nil, err
	}
	stats["total_count"] = totalCount

	var positiveCount int64
	if err := m.db.Model(&models.GenerationFeedback{}).Where("is_positive = ?", true).Count(&positiveCount).Error; err != nil {
		return nil, err
	}
	stats["positive_count"] = positiveCount

	var unexportedCount int64
	if err := m.db.Model(&models.GenerationFeedback{}).Where("exported = ?", false).Count(&unexportedCount).Error; err != nil {
		return nil, err
	}
	stats["unexported_count"] = unexportedCount

	stats["cached_contexts"] = m.contextCache.Size()

	return stats, nil
}
