// internal/models/export.go
package models

// ExportRecord is the flat lead record posted to the CRM automation. The
// JSON keys are the field names of the receiving table.
type ExportRecord struct {
	RecordKind string `json:"tipoUsuario"`

	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`

	Role      string `json:"rol"`
	Portfolio string `json:"numEdificios"`
	Horizon   string `json:"horizonte"`
	Vendor    string `json:"tieneEmpresa"`

	CompanyName string `json:"nombreEmpresa"`
	Website     string `json:"web"`
	CompanyType string `json:"tipoEmpresa"`
	ServiceArea string `json:"zonasActuacion"`

	PostalCode      string  `json:"codigoPostal"`
	ConstructionEra string  `json:"anosConstruccion"`
	Floors          int     `json:"numPlantas"`
	Dwellings       int     `json:"numViviendas"`
	FacadeArea      float64 `json:"superficieFachada"`
	FacadeType      string  `json:"tipoFachada"`
	EnergyCondition string  `json:"situacionEnergetica"`

	CombineWindows bool `json:"combinarVentanas"`
	CombineRoof    bool `json:"combinarCubierta"`

	TotalCost       int     `json:"costeEstimadoTotal"`
	CostPerDwelling int     `json:"costePorVivienda"`
	AnnualSavings   int     `json:"ahorroAnualEstimado"`
	PaybackYears    float64 `json:"paybackEstimado"`
	SubsidyAmount   int     `json:"subvencionEstimada"`
	NetInvestment   int     `json:"inversionNeta"`

	Priority  string `json:"prioridadLead"`
	Timestamp string `json:"timestamp"`
}

// ToMap returns the record as a flat map keyed by the wire names.
func (r ExportRecord) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"tipoUsuario":         r.RecordKind,
		"nombre":              r.Name,
		"email":               r.Email,
		"telefono":            r.Phone,
		"rol":                 r.Role,
		"numEdificios":        r.Portfolio,
		"horizonte":           r.Horizon,
		"tieneEmpresa":        r.Vendor,
		"nombreEmpresa":       r.CompanyName,
		"web":                 r.Website,
		"tipoEmpresa":         r.CompanyType,
		"zonasActuacion":      r.ServiceArea,
		"codigoPostal":        r.PostalCode,
		"anosConstruccion":    r.ConstructionEra,
		"numPlantas":          r.Floors,
		"numViviendas":        r.Dwellings,
		"superficieFachada":   r.FacadeArea,
		"tipoFachada":         r.FacadeType,
		"situacionEnergetica": r.EnergyCondition,
		"combinarVentanas":    r.CombineWindows,
		"combinarCubierta":    r.CombineRoof,
		"costeEstimadoTotal":  r.TotalCost,
		"costePorVivienda":    r.CostPerDwelling,
		"ahorroAnualEstimado": r.AnnualSavings,
		"paybackEstimado":     r.PaybackYears,
		"subvencionEstimada":  r.SubsidyAmount,
		"inversionNeta":       r.NetInvestment,
		"prioridadLead":       r.Priority,
		"timestamp":           r.Timestamp,
	}
}
