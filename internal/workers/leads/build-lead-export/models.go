// internal/workers/leads/build-lead-export/models.go
package buildleadexport

import "sate-calculator/internal/models"

type Input struct {
	Building models.BuildingAttributes `json:"building"`
	Lead     models.LeadAttributes     `json:"lead"`
	Result   *models.EstimationResult  `json:"result,omitempty"`
	Priority models.Priority           `json:"priority"`
}

type Output struct {
	Record models.ExportRecord `json:"record"`
}
