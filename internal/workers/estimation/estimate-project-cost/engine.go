// internal/workers/estimation/estimate-project-cost/engine.go
package estimateprojectcost

import (
	"math"

	"sate-calculator/internal/models"
)

// Estimate prices a facade insulation project. It never fails: unparseable
// quantities fall back to defaults (area 0, floors 1, dwellings 1) and
// unknown codes to the neutral table entries.
func Estimate(b models.BuildingAttributes) models.EstimationResult {
	return Compute(b).Round()
}

// Compute returns the unrounded figures behind Estimate.
func Compute(b models.BuildingAttributes) Figures {
	f := Figures{
		FacadeArea: b.FacadeArea.Float(0),
		Dwellings:  b.Dwellings.Int(1),
		Floors:     b.Floors.Int(1),
		PostalCode: b.PostalCode,
	}

	f.EraFactor = eraFactor(b.ConstructionEra)
	f.HeightFactor = heightFactor(f.Floors)
	f.ConditionFactor = conditionFactor(b.EnergyCondition)

	adjust := f.EraFactor * f.HeightFactor * f.ConditionFactor
	f.PriceMin = basePriceMin * adjust
	f.PriceMax = basePriceMax * adjust
	f.PriceMid = (f.PriceMin + f.PriceMax) / 2

	f.PreTax = f.FacadeArea * f.PriceMid
	f.TaxInclusive = f.PreTax * taxMultiplier
	if f.Dwellings != 0 {
		f.PerDwelling = f.TaxInclusive / float64(f.Dwellings)
	}
	if f.FacadeArea != 0 {
		f.PerSquareMeter = f.TaxInclusive / f.FacadeArea
	}

	f.Breakdown = BreakdownFigures{
		InsulationSystem: f.PreTax * shareInsulationSystem,
		Scaffolding:      f.PreTax * shareScaffolding,
		SubstrateRepair:  f.PreTax * shareSubstrateRepair,
		Finishes:         f.PreTax * shareFinishes,
		ProfessionalFees: f.PreTax * shareProfessionalFees,
		Permits:          f.PreTax * sharePermits,
		Contingency:      f.PreTax * shareContingency,
	}

	f.SavingsRange = savingsRange(b.EnergyCondition)
	f.SavingsPercent = f.SavingsRange.Mid()
	f.AnnualSavingsPerDwelling = referenceEnergySpend * (f.SavingsPercent / 100)
	f.AnnualSavingsTotal = f.AnnualSavingsPerDwelling * float64(f.Dwellings)

	f.SubsidyRange = subsidyRange(b.ConstructionEra)
	f.SubsidyPercent = f.SubsidyRange.Mid()
	f.SubsidyAmount = f.TaxInclusive * (f.SubsidyPercent / 100)
	f.NetInvestment = f.TaxInclusive - f.SubsidyAmount

	if f.AnnualSavingsTotal > 0 && fitsInt(f.TaxInclusive) && fitsInt(f.AnnualSavingsTotal) {
		years := f.NetInvestment / f.AnnualSavingsTotal
		if fitsInt(years * paybackHighFactor) {
			f.PaybackYears = years
			f.PaybackDefined = true
		}
	}

	return f
}

// Round produces the displayed estimate. Amounts round half up; the
// percentage point estimates are kept as they are.
func (f Figures) Round() models.EstimationResult {
	res := models.EstimationResult{
		Cost: models.Cost{
			PreTax:         roundHalfUp(f.PreTax),
			TaxInclusive:   roundHalfUp(f.TaxInclusive),
			PerDwelling:    roundHalfUp(f.PerDwelling),
			PerSquareMeter: roundHalfUp(f.PerSquareMeter),
		},
		PricePerM2: models.Range{Min: roundHalfUp(f.PriceMin), Max: roundHalfUp(f.PriceMax)},
		Breakdown: models.Breakdown{
			InsulationSystem: roundHalfUp(f.Breakdown.InsulationSystem),
			Scaffolding:      roundHalfUp(f.Breakdown.Scaffolding),
			SubstrateRepair:  roundHalfUp(f.Breakdown.SubstrateRepair),
			Finishes:         roundHalfUp(f.Breakdown.Finishes),
			ProfessionalFees: roundHalfUp(f.Breakdown.ProfessionalFees),
			Permits:          roundHalfUp(f.Breakdown.Permits),
			Contingency:      roundHalfUp(f.Breakdown.Contingency),
		},
		Savings: models.Savings{
			Percent:           finiteOrZero(f.SavingsPercent),
			PercentRange:      toRange(f.SavingsRange),
			AnnualPerDwelling: roundHalfUp(f.AnnualSavingsPerDwelling),
			AnnualTotal:       roundHalfUp(f.AnnualSavingsTotal),
		},
		Subsidy: models.Subsidy{
			Percent:       finiteOrZero(f.SubsidyPercent),
			PercentRange:  toRange(f.SubsidyRange),
			Amount:        roundHalfUp(f.SubsidyAmount),
			NetInvestment: roundHalfUp(f.NetInvestment),
		},
		FacadeArea: finiteOrZero(f.FacadeArea),
		Dwellings:  f.Dwellings,
		PostalCode: f.PostalCode,
	}

	if f.PaybackDefined {
		res.Payback = models.Payback{
			Years: roundTenth(f.PaybackYears),
			Range: models.Range{
				Min: toInt(math.Floor(f.PaybackYears * paybackLowFactor)),
				Max: toInt(math.Ceil(f.PaybackYears * paybackHighFactor)),
			},
			Defined: true,
		}
	}

	return res
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// maxIntFloat is 2^63, the first float64 past the int range.
const maxIntFloat = float64(1 << 63)

// fitsInt reports whether x converts to int without overflow.
func fitsInt(x float64) bool {
	return isFinite(x) && x < maxIntFloat && x >= -maxIntFloat
}

// toInt truncates x, mapping values outside the int range to 0.
func toInt(x float64) int {
	if !fitsInt(x) {
		return 0
	}
	return int(x)
}

func finiteOrZero(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}

// roundHalfUp rounds to the nearest int. Amounts that do not fit an int
// come out as 0, like non-finite ones.
func roundHalfUp(x float64) int {
	return toInt(math.Floor(x + 0.5))
}

func roundTenth(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return math.Floor(x*10+0.5) / 10
}

func toRange(r PercentRange) models.Range {
	return models.Range{Min: roundHalfUp(r.Min), Max: roundHalfUp(r.Max)}
}
