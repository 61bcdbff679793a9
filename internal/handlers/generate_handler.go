package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docagent/internal/cache"
	"docagent/internal/history"
	"docagent/internal/llm"
	"docagent/internal/metrics"
	"docagent/internal/middleware"
	"docagent/internal/models"
	"docagent/internal/prompts"
	"docagent/internal/pycode"
	"docagent/internal/utils"
)

type GenerateHandler struct {
	provider       llm.Provider
	promptManager  prompts.PromptProvider
	logger         *zap.Logger
	resultCache    *cache.ResultCache // optional
	historyManager *history.Manager   // optional
}

func NewGenerateHandler(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		provider:      provider,
		promptManager: promptManager,
		logger:        logger,
	}
}

// SetResultCache enables the Redis result cache.
func (h *GenerateHandler) SetResultCache(c *cache.ResultCache) {
	h.resultCache = c
}

// SetHistoryManager enables feedback collection for generations.
func (h *GenerateHandler) SetHistoryManager(m *history.Manager) {
	h.historyManager = m
}

// Generate handles POST /api/generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	// Get the validated request from middleware
	req := middleware.GetValidatedRequest[*models.GenerateRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	startTime := time.Now()

	// empty input never reaches the model; it is answered with the fixed
	// error comment and a 200, matching the documented contract
	if strings.TrimSpace(req.SourceCode) == "" {
		metrics.RecordGeneration(req.Style, "failed")
		utils.JSON(w, http.StatusOK, models.GenerateResponse{
			DocumentedCode: pycode.EmptySourceComment,
			Message:        models.MessageFailed,
			RequestID:      req.RequestID,
		})
		return
	}

	cacheKey := cache.Key(req.Style, h.provider.GetProviderName(), req.SourceCode)
	if h.resultCache != nil {
		documented, hit, err := h.resultCache.Get(r.Context(), cacheKey)
		if err != nil {
			h.logger.Warn("Result cache lookup failed", zap.Error(err), zap.String("request_id", req.RequestID))
		} else if hit {
			metrics.RecordGeneration(req.Style, "cached")
			utils.JSON(w, http.StatusOK, models.GenerateResponse{
				DocumentedCode: documented,
				Message:        models.MessageSuccess,
				RequestID:      req.RequestID,
				Metadata: &models.GenerationMetadata{
					ProcessingTime: int(time.Since(startTime).Milliseconds()),
					Provider:       h.provider.GetProviderName(),
					Style:          req.Style,
					Cached:         true,
				},
			})
			return
		}
	}

	promptData := map[string]interface{}{
		"Code": req.SourceCode,
	}

	prompt, err := h.promptManager.BuildPrompt("docstring", req.Style, promptData)
	if err != nil {
		h.logger.Error("Failed to build prompt", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Detail: "Failed to build generation prompt",
		})
		return
	}

	result, err := h.provider.GenerateDocumented(r.Context(), prompt, req.RequestID)
	if err != nil {
		h.logger.Error("AI provider error", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.JSON(w, providerErrorStatus(err), models.ErrorResponse{
			Detail: "Failed to generate docstrings",
		})
		return
	}

	documented := pycode.Postprocess(result.Content, req.SourceCode)

	// mirror of the upstream contract: an error comment in the output means
	// the run failed even though the HTTP status is 200
	message := models.MessageSuccess
	outcome := "success"
	if strings.Contains(documented, "Error:") {
		message = models.MessageFailed
		outcome = "failed"
	}
	metrics.RecordGeneration(req.Style, outcome)

	if outcome == "success" {
		if h.resultCache != nil {
			if err := h.resultCache.Set(r.Context(), cacheKey, documented); err != nil {
				h.logger.Warn("Result cache store failed", zap.Error(err), zap.String("request_id", req.RequestID))
			}
		}
		if h.historyManager != nil {
			h.historyManager.StoreRequestContext(&models.RequestContext{
				RequestID:      req.RequestID,
				Style:          req.Style,
				SourceCode:     req.SourceCode,
				Prompt:         prompt,
				DocumentedCode: documented,
				ModelName:      result.Model,
				Timestamp:      time.Now(),
			})
		}
	}

	h.logger.Info("Docstrings generated",
		zap.String("request_id", req.RequestID),
		zap.String("provider", h.provider.GetProviderName()),
		zap.String("style", req.Style),
		zap.String("outcome", outcome),
		zap.Int("processing_time_ms", result.ProcessingTime))

	utils.JSON(w, http.StatusOK, models.GenerateResponse{
		DocumentedCode: documented,
		Message:        message,
		RequestID:      req.RequestID,
		Metadata: &models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       h.provider.GetProviderName(),
			Model:          result.Model,
			Style:          req.Style,
		},
	})
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID generates a request ID if one is not provided
func ensureRequestID(requestID string) string {
	if requestID == "" {
		return generateRequestID()
	}
	return requestID
}

// providerErrorStatus maps provider error codes to HTTP statuses
func providerErrorStatus(err error) int {
	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		switch provErr.Code {
		case llm.ErrCodeRateLimit:
			return http.StatusTooManyRequests
		case llm.ErrCodeTimeout:
			return http.StatusGatewayTimeout
		}
	}
	return http.StatusInternalServerError
}
