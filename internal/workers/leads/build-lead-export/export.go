// internal/workers/leads/build-lead-export/export.go
package buildleadexport

import (
	"time"

	"sate-calculator/internal/models"
)

// TimestampLayout is ISO-8601 in UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(at time.Time) string {
	return at.UTC().Format(TimestampLayout)
}

// ToExportRecord flattens a submission into the CRM record. Codes become
// labels, quantities that do not parse become 0 and a nil result exports
// zero figures. Demand records carry the demand block only; supply records
// carry the company block with role "Profesional".
func ToExportRecord(b models.BuildingAttributes, l models.LeadAttributes, result *models.EstimationResult, priority models.Priority, at time.Time) models.ExportRecord {
	rec := models.ExportRecord{
		RecordKind: RecordKinds.Label(string(models.KindOf(l))),

		Name:  l.Name,
		Email: l.Email,
		Phone: l.Phone,

		PostalCode:      b.PostalCode,
		ConstructionEra: ConstructionEras.Label(b.ConstructionEra),
		Floors:          b.Floors.Int(0),
		Dwellings:       b.Dwellings.Int(0),
		FacadeArea:      b.FacadeArea.Float(0),
		FacadeType:      FacadeTypes.Label(b.FacadeType),
		EnergyCondition: EnergyConditions.Label(b.EnergyCondition),

		CombineWindows: b.Combine.Windows,
		CombineRoof:    b.Combine.Roof,

		Priority:  Priorities.Label(string(priority)),
		Timestamp: FormatTimestamp(at),
	}

	if l.IsProfessional {
		rec.Role = Roles.Label(models.RoleProfessional)
		rec.CompanyName = l.CompanyName
		rec.Website = l.Website
		rec.CompanyType = CompanyTypes.Label(l.CompanyType)
		rec.ServiceArea = l.ServiceArea
	} else {
		rec.Role = Roles.Label(l.Role)
		rec.Portfolio = Portfolios.Label(l.Portfolio)
		rec.Horizon = Horizons.Label(l.Horizon)
		rec.Vendor = VendorStatuses.Label(l.Vendor)
	}

	if result != nil {
		rec.TotalCost = result.Cost.TaxInclusive
		rec.CostPerDwelling = result.Cost.PerDwelling
		rec.AnnualSavings = result.Savings.AnnualTotal
		rec.PaybackYears = result.Payback.Years
		rec.SubsidyAmount = result.Subsidy.Amount
		rec.NetInvestment = result.Subsidy.NetInvestment
	}

	return rec
}
