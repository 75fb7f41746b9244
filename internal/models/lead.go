// internal/models/lead.go
package models

// Role codes. RoleProfessional is assigned to supplier leads.
const (
	RolePresident     = "presidente"
	RoleAdministrator = "administrador"
	RoleManager       = "gestor"
	RoleOwner         = "propietario"
	RoleProfessional  = "profesional"
)

// Portfolio size codes.
const (
	PortfolioSingle = "solo-este"
	Portfolio2To10  = "2-10"
	PortfolioOver10 = "mas-10"
)

// Execution horizon codes.
const (
	Horizon6Months   = "6-meses"
	Horizon6To12     = "6-12-meses"
	HorizonExploring = "explorando"
)

// Vendor status codes.
const (
	VendorYes       = "si"
	VendorNo        = "no"
	VendorComparing = "comparando"
)

// Company type codes.
const (
	CompanyInstaller      = "instalador-sate"
	CompanyRehabilitation = "rehabilitacion-integral"
	CompanyEngineering    = "arquitectura-ingenieria"
	CompanyOther          = "otro"
)

// LeadAttributes is the contact form. Demand leads (owners and managers)
// fill the Role/Portfolio/Horizon/Vendor block, supplier leads the company
// block.
type LeadAttributes struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,phone"`
	IsProfessional bool   `json:"isProfessional"`

	Role      string `json:"role" validate:"required,oneof=presidente administrador gestor propietario profesional"`
	Portfolio string `json:"portfolio,omitempty" validate:"required_if=IsProfessional false,omitempty,oneof=solo-este 2-10 mas-10"`
	Horizon   string `json:"horizon,omitempty" validate:"required_if=IsProfessional false,omitempty,oneof=6-meses 6-12-meses explorando"`
	Vendor    string `json:"vendor,omitempty" validate:"required_if=IsProfessional false,omitempty,oneof=si no comparando"`

	CompanyName string `json:"companyName,omitempty" validate:"required_if=IsProfessional true"`
	Website     string `json:"website,omitempty"`
	CompanyType string `json:"companyType,omitempty" validate:"required_if=IsProfessional true,omitempty,oneof=instalador-sate rehabilitacion-integral arquitectura-ingenieria otro"`
	ServiceArea string `json:"serviceArea,omitempty"`
}

// AsSupplier returns the lead in supplier shape: role forced to
// RoleProfessional and the demand block cleared.
func (l LeadAttributes) AsSupplier() LeadAttributes {
	l.Role = RoleProfessional
	l.Portfolio = ""
	l.Horizon = ""
	l.Vendor = ""
	return l
}

// Priority is the sales urgency tier of a lead.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders the tiers: HIGH 3, MEDIUM 2, LOW 1, anything else 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// RecordKind distinguishes demand (building owners) from supply
// (professionals) leads.
type RecordKind string

const (
	RecordKindDemand RecordKind = "DEMAND"
	RecordKindSupply RecordKind = "SUPPLY"
)

func KindOf(l LeadAttributes) RecordKind {
	if l.IsProfessional {
		return RecordKindSupply
	}
	return RecordKindDemand
}

// Submission is one completed calculator session.
type Submission struct {
	Building BuildingAttributes `json:"building"`
	Lead     LeadAttributes     `json:"lead"`
}
