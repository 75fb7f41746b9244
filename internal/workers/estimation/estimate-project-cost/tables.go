// internal/workers/estimation/estimate-project-cost/tables.go
package estimateprojectcost

import "sate-calculator/internal/models"

const (
	basePriceMin = 80.0
	basePriceMax = 130.0

	taxMultiplier = 1.21

	// annual energy spend of an average dwelling, EUR
	referenceEnergySpend = 1500.0

	maxTabulatedFloors = 10

	paybackLowFactor  = 0.85
	paybackHighFactor = 1.15
)

const (
	defaultEraFactor       = 1.00
	defaultHeightFactor    = 1.30
	defaultConditionFactor = 1.00
)

var (
	defaultSavingsRange = PercentRange{Min: 25, Max: 35}
	defaultSubsidyRange = PercentRange{Min: 30, Max: 50}
)

var eraFactors = map[string]float64{
	models.EraBefore1979: 1.20,
	models.Era1980To2006: 1.10,
	models.Era2007To2013: 1.00,
	models.Era2014To2020: 0.95,
	models.Era2021On:     0.90,
}

var heightFactors = map[int]float64{
	1: 1.00, 2: 1.00, 3: 1.05, 4: 1.08, 5: 1.12,
	6: 1.15, 7: 1.18, 8: 1.22, 9: 1.25, 10: 1.30,
}

var conditionFactors = map[string]float64{
	models.ConditionVeryPoor:   1.15,
	models.ConditionAverage:    1.00,
	models.ConditionAcceptable: 0.95,
}

var savingsRanges = map[string]PercentRange{
	models.ConditionVeryPoor:   {Min: 35, Max: 45},
	models.ConditionAverage:    {Min: 25, Max: 35},
	models.ConditionAcceptable: {Min: 15, Max: 25},
}

// regional rehabilitation grant bands by construction era
var subsidyRanges = map[string]PercentRange{
	models.EraBefore1979: {Min: 50, Max: 70},
	models.Era1980To2006: {Min: 40, Max: 60},
	models.Era2007To2013: {Min: 35, Max: 50},
	models.Era2014To2020: {Min: 30, Max: 45},
	models.Era2021On:     {Min: 20, Max: 35},
}

// shares of the pre-tax cost; they add up to 1
const (
	shareInsulationSystem = 0.55
	shareScaffolding      = 0.15
	shareSubstrateRepair  = 0.10
	shareFinishes         = 0.08
	shareProfessionalFees = 0.07
	sharePermits          = 0.03
	shareContingency      = 0.02
)

func eraFactor(era string) float64 {
	if f, ok := eraFactors[era]; ok {
		return f
	}
	return defaultEraFactor
}

// heightFactor caps floors at the last tabulated value. Counts below the
// table fall back to the tallest factor.
func heightFactor(floors int) float64 {
	if floors > maxTabulatedFloors {
		floors = maxTabulatedFloors
	}
	if f, ok := heightFactors[floors]; ok {
		return f
	}
	return defaultHeightFactor
}

func conditionFactor(condition string) float64 {
	if f, ok := conditionFactors[condition]; ok {
		return f
	}
	return defaultConditionFactor
}

func savingsRange(condition string) PercentRange {
	if r, ok := savingsRanges[condition]; ok {
		return r
	}
	return defaultSavingsRange
}

func subsidyRange(era string) PercentRange {
	if r, ok := subsidyRanges[era]; ok {
		return r
	}
	return defaultSubsidyRange
}
