// internal/models/estimate.go
package models

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Cost struct {
	PreTax         int `json:"preTax"`
	TaxInclusive   int `json:"taxInclusive"`
	PerDwelling    int `json:"perDwelling"`
	PerSquareMeter int `json:"perSquareMeter"`
}

// Breakdown splits the pre-tax cost into work items. Items are rounded one
// by one, so their sum may differ slightly from Cost.PreTax.
type Breakdown struct {
	InsulationSystem int `json:"insulationSystem"`
	Scaffolding      int `json:"scaffolding"`
	SubstrateRepair  int `json:"substrateRepair"`
	Finishes         int `json:"finishes"`
	ProfessionalFees int `json:"professionalFees"`
	Permits          int `json:"permits"`
	Contingency      int `json:"contingency"`
}

func (b Breakdown) Total() int {
	return b.InsulationSystem + b.Scaffolding + b.SubstrateRepair + b.Finishes +
		b.ProfessionalFees + b.Permits + b.Contingency
}

type Savings struct {
	Percent           float64 `json:"percent"`
	PercentRange      Range   `json:"percentRange"`
	AnnualPerDwelling int     `json:"annualPerDwelling"`
	AnnualTotal       int     `json:"annualTotal"`
}

type Subsidy struct {
	Percent       float64 `json:"percent"`
	PercentRange  Range   `json:"percentRange"`
	Amount        int     `json:"amount"`
	NetInvestment int     `json:"netInvestment"`
}

// Payback is undefined when there are no savings to recover the investment.
type Payback struct {
	Years   float64 `json:"years"`
	Range   Range   `json:"range"`
	Defined bool    `json:"defined"`
}

// EstimationResult is the rounded estimate shown to the user.
type EstimationResult struct {
	Cost       Cost      `json:"cost"`
	PricePerM2 Range     `json:"pricePerM2"`
	Breakdown  Breakdown `json:"breakdown"`
	Savings    Savings   `json:"savings"`
	Subsidy    Subsidy   `json:"subsidy"`
	Payback    Payback   `json:"payback"`

	FacadeArea float64 `json:"facadeArea"`
	Dwellings  int     `json:"dwellings"`
	PostalCode string  `json:"postalCode"`
}
