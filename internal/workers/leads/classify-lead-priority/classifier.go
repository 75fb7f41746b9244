// internal/workers/leads/classify-lead-priority/classifier.go
package classifyleadpriority

import "sate-calculator/internal/models"

var (
	managerRoles = map[string]bool{
		models.RoleAdministrator: true,
		models.RoleManager:       true,
		models.RolePresident:     true,
	}
	multiBuildingPortfolios = map[string]bool{
		models.Portfolio2To10:  true,
		models.PortfolioOver10: true,
	}
	nearTermHorizons = map[string]bool{
		models.Horizon6Months: true,
		models.Horizon6To12:   true,
	}
	openVendorStatuses = map[string]bool{
		models.VendorNo:        true,
		models.VendorComparing: true,
	}
)

// ClassifyPriority ranks a lead. Rules are checked in order and the first
// match wins:
//
//	HIGH    manager role, several buildings, near-term horizon and no vendor yet
//	MEDIUM  near-term horizon
//	LOW     everything else
//
// Professional leads carry no demand answers and end up LOW.
func ClassifyPriority(lead models.LeadAttributes) models.Priority {
	p, _ := classify(lead)
	return p
}

func classify(lead models.LeadAttributes) (models.Priority, string) {
	if lead.IsProfessional {
		lead = lead.AsSupplier()
	}

	nearTerm := nearTermHorizons[lead.Horizon]

	if managerRoles[lead.Role] &&
		multiBuildingPortfolios[lead.Portfolio] &&
		nearTerm &&
		openVendorStatuses[lead.Vendor] {
		return models.PriorityHigh, RuleHighIntentManager
	}
	if nearTerm {
		return models.PriorityMedium, RuleNearTermHorizon
	}
	return models.PriorityLow, RuleDefault
}
