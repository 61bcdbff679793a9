package models

// GenerateResponse is the success body of POST /api/generate.
// documented_code and message are the documented contract; request_id and
// metadata are additive and may be ignored by clients.
type GenerateResponse struct {
	DocumentedCode string              `json:"documented_code"`
	Message        string              `json:"message"`
	RequestID      string              `json:"request_id,omitempty"`
	Metadata       *GenerationMetadata `json:"metadata,omitempty"`
}

// additional information about a generation run
type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	Style          string `json:"style"`
	Cached         bool   `json:"cached"`
}

// GenerationResult is what an LLM provider returns for one prompt.
type GenerationResult struct {
	Content        string
	Model          string
	ProcessingTime int
}

// ErrorResponse is the uniform error envelope: {"detail": "..."}.
// Status selects the HTTP status when the error is surfaced by the
// validation middleware; zero means 400.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Status int    `json:"-"`
}

func (e *ErrorResponse) Error() string {
	return e.Detail
}

// Resp is the generic envelope for feedback/stats endpoints.
type Resp struct {
	OK   bool        `json:"ok"`
	Info interface{} `json:"info"`
}
