// Package client implements the submit flow against the docstring
// generation API. It mirrors the browser frontend: validate input,
// post the snippet, and push the outcome to a display.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"docagent/internal/models"
)

// State classifies a status update pushed to the display.
type State string

const (
	StatePending State = "pending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Display receives status and output updates from a submission.
// Implementations decide how to render them (terminal, DOM, test double).
type Display interface {
	SetStatus(state State, message string)
	SetOutput(code string)
}

const (
	msgEmptyInput  = "Error: Input is empty."
	msgGenerating  = "Generating docstrings..."
	fallbackDetail = "An error occurred"
	// OfflinePlaceholder replaces the output when the service is unreachable.
	OfflinePlaceholder = "# Error: could not reach the docstring service."
)

// Submitter posts source code to a docagent server.
type Submitter struct {
	baseURL string
	httpc   *http.Client

	// Style optionally selects the docstring style; the server applies
	// its default when empty.
	Style string
}

// NewSubmitter returns a Submitter for the given server base URL,
// e.g. "http://localhost:8085".
func NewSubmitter(baseURL string) *Submitter {
	return &Submitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Submit sends source to the generation endpoint and reports the result
// through display. Empty or whitespace-only input short-circuits without
// a network call. The raw source is sent untrimmed.
func (s *Submitter) Submit(ctx context.Context, source string, display Display) {
	if strings.TrimSpace(source) == "" {
		display.SetStatus(StateError, msgEmptyInput)
		return
	}

	display.SetStatus(StatePending, msgGenerating)
	display.SetOutput("")

	payload, err := json.Marshal(models.GenerateRequest{
		SourceCode: source,
		Filename:   models.DefaultFilename,
		Style:      s.Style,
	})
	if err != nil {
		s.fail(display, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		s.fail(display, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		s.fail(display, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var result models.GenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			s.fail(display, err)
			return
		}
		display.SetOutput(result.DocumentedCode)
		display.SetStatus(StateSuccess, result.Message)
		return
	}

	// Non-2xx: surface the server's detail when the body parses,
	// otherwise a generic message. The output region is left alone.
	detail := fallbackDetail
	var errBody models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Detail != "" {
		detail = errBody.Detail
	}
	display.SetStatus(StateError, "Error: "+detail)
}

// fail reports a transport-level failure: the request never produced a
// usable response, so the output is replaced with a placeholder.
func (s *Submitter) fail(display Display, err error) {
	display.SetStatus(StateError, "Error: "+err.Error())
	display.SetOutput(OfflinePlaceholder)
}
