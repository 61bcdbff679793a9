package models

import "docagent/internal/utils"

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	SourceCode string `json:"source_code"`
	Filename   string `json:"filename"`
	Style      string `json:"style,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// implements the Validator interface used by the validation middleware
func (r *GenerateRequest) Validate() error {
	r.Filename = utils.NormalizeFilename(r.Filename)
	if r.Filename == "" {
		r.Filename = DefaultFilename
	}

	r.Style = utils.NormalizeStyle(r.Style)
	if r.Style == "" {
		r.Style = DefaultStyle
	}

	if !ValidStyles[r.Style] {
		return &ErrorResponse{
			Detail: "Unsupported docstring style. Supported styles: google, numpy, sphinx",
		}
	}

	// mirror of the upstream payload guard: oversized snippets are rejected
	// before any prompt is built
	if len(r.SourceCode) > MaxSourceBytes {
		return &ErrorResponse{
			Status: 413,
			Detail: "Payload too large. Please process smaller files.",
		}
	}

	return nil
}

// FeedbackRequest is the body of POST /api/feedback/{request_id}.
type FeedbackRequest struct {
	IsPositive bool `json:"is_positive"`
}
