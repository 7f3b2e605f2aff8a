package api

// Response represents a the JSON error envelope.
type Response struct {
	Success   bool   `json:"success" example:"false"`
	Error     string `json:"error,omitempty" example:"city parameter must be given"`
	RequestID string `json:"request_id,omitempty" example:"host/abc123-000001"`
}
