// internal/workers/estimation/estimate-project-cost/models.go
package estimateprojectcost

import "sate-calculator/internal/models"

type Input struct {
	Building models.BuildingAttributes `json:"building"`
}

type Output struct {
	Result models.EstimationResult `json:"result"`
	Cached bool                    `json:"cached"`
}

// PercentRange is a {min, max} percentage band.
type PercentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PercentRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// BreakdownFigures are the unrounded work item amounts.
type BreakdownFigures struct {
	InsulationSystem float64
	Scaffolding      float64
	SubstrateRepair  float64
	Finishes         float64
	ProfessionalFees float64
	Permits          float64
	Contingency      float64
}

// Figures holds every intermediate value of an estimate before rounding.
type Figures struct {
	FacadeArea float64
	Dwellings  int
	Floors     int
	PostalCode string

	EraFactor       float64
	HeightFactor    float64
	ConditionFactor float64

	PriceMin float64
	PriceMax float64
	PriceMid float64

	PreTax         float64
	TaxInclusive   float64
	PerDwelling    float64
	PerSquareMeter float64
	Breakdown      BreakdownFigures

	SavingsRange             PercentRange
	SavingsPercent           float64
	AnnualSavingsPerDwelling float64
	AnnualSavingsTotal       float64

	SubsidyRange   PercentRange
	SubsidyPercent float64
	SubsidyAmount  float64
	NetInvestment  float64

	PaybackYears   float64
	PaybackDefined bool
}
