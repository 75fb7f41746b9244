// internal/workers/leads/classify-lead-priority/models.go
package classifyleadpriority

import "sate-calculator/internal/models"

// Names of the rule that decided the tier.
const (
	RuleHighIntentManager = "high-intent-manager"
	RuleNearTermHorizon   = "near-term-horizon"
	RuleDefault           = "default"
)

type Input struct {
	Lead models.LeadAttributes `json:"lead"`
}

type Output struct {
	Priority models.Priority `json:"priority"`
	Rule     string          `json:"rule"`
}
