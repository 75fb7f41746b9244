// internal/workers/leads/validate-submission/models.go
package validatesubmission

import "sate-calculator/internal/models"

type Input struct {
	Submission models.Submission `json:"submission"`
}

// Output carries the cleaned submission: postal code reduced to digits,
// text trimmed, phone in E.164 and professional leads in supplier shape.
type Output struct {
	Submission models.Submission `json:"submission"`
}
