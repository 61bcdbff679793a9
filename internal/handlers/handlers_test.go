package handlers

import (
	"context"
	"text/template"

	"docagent/internal/models"
)

type mockProvider struct {
	generateFn func(ctx context.Context, prompt string, requestID string) (*models.GenerationResult, error)
	nameFn     func() string
}

func (m *mockProvider) GenerateDocumented(ctx context.Context, prompt string, requestID string) (*models.GenerationResult, error) {
	if m.generateFn == nil {
		return &models.GenerationResult{}, nil
	}
	return m.generateFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string {
	if m.nameFn == nil {
		return "mock"
	}
	return m.nameFn()
}

type mockPromptManager struct {
	buildPromptFn  func(mode, variant string, data interface{}) (string, error)
	getTemplatesFn func() map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, variant, data)
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	if m.getTemplatesFn == nil {
		return map[string]map[string]*template.Template{
			"docstring": {},
		}
	}
	return m.getTemplatesFn()
}
