// internal/workers/leads/deliver-lead/models.go
package deliverlead

import "sate-calculator/internal/models"

type Input struct {
	Record   models.ExportRecord `json:"record"`
	Priority models.Priority     `json:"priority"`
	// SubmissionID is generated when empty.
	SubmissionID string `json:"submissionId,omitempty"`
}

// Output reports the delivery outcome. Failures are described here, never
// returned as errors.
type Output struct {
	Delivered    bool   `json:"delivered"`
	SubmissionID string `json:"submissionId"`
	StatusCode   int    `json:"statusCode,omitempty"`
	Error        string `json:"error,omitempty"`

	AlertSent  bool   `json:"alertSent"`
	AlertError string `json:"alertError,omitempty"`
}
