// internal/workers/leads/build-lead-export/codetable.go
package buildleadexport

import (
	"fmt"
	"sort"

	"sate-calculator/internal/models"
)

// CodeTable translates internal codes to the labels used by the CRM and
// back. Unknown values pass through unchanged in both directions.
type CodeTable struct {
	name   string
	labels map[string]string
	codes  map[string]string
}

func newCodeTable(name string, labels map[string]string) CodeTable {
	codes := make(map[string]string, len(labels))
	for code, label := range labels {
		if prev, dup := codes[label]; dup {
			panic(fmt.Sprintf("code table %s: label %q used by %q and %q", name, label, prev, code))
		}
		codes[label] = code
	}
	return CodeTable{name: name, labels: labels, codes: codes}
}

func (t CodeTable) Name() string {
	return t.name
}

// Label returns the display label for code.
func (t CodeTable) Label(code string) string {
	if label, ok := t.labels[code]; ok {
		return label
	}
	return code
}

// Code returns the internal code for label.
func (t CodeTable) Code(label string) string {
	if code, ok := t.codes[label]; ok {
		return code
	}
	return label
}

// Codes lists the mapped codes in sorted order.
func (t CodeTable) Codes() []string {
	out := make([]string, 0, len(t.labels))
	for code := range t.labels {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

var (
	FacadeTypes = newCodeTable("tipoFachada", map[string]string{
		models.FacadeBrick:    "Ladrillo",
		models.FacadeMonocapa: "Monocapa",
		models.FacadeRender:   "Revoco",
		models.FacadeOther:    "Otro",
	})

	EnergyConditions = newCodeTable("situacionEnergetica", map[string]string{
		models.ConditionVeryPoor:   "Muy mala",
		models.ConditionAverage:    "Media",
		models.ConditionAcceptable: "Aceptable",
	})

	ConstructionEras = newCodeTable("anosConstruccion", map[string]string{
		models.EraBefore1979: "Antes de 1979",
		models.Era1980To2006: "1980-2006",
		models.Era2007To2013: "2007-2013",
		models.Era2014To2020: "2014-2020",
		models.Era2021On:     "2021+",
	})

	Roles = newCodeTable("rol", map[string]string{
		models.RolePresident:     "Presidente",
		models.RoleAdministrator: "Administrador",
		models.RoleManager:       "Gestor",
		models.RoleOwner:         "Propietario",
		models.RoleProfessional:  "Profesional",
	})

	Portfolios = newCodeTable("numEdificios", map[string]string{
		models.PortfolioSingle: "Solo este",
		models.Portfolio2To10:  "Entre 2 y 10",
		models.PortfolioOver10: "Más de 10",
	})

	Horizons = newCodeTable("horizonte", map[string]string{
		models.Horizon6Months:   "6 meses",
		models.Horizon6To12:     "6-12 meses",
		models.HorizonExploring: "Solo explorando",
	})

	VendorStatuses = newCodeTable("tieneEmpresa", map[string]string{
		models.VendorYes:       "Sí",
		models.VendorNo:        "No",
		models.VendorComparing: "Comparando",
	})

	CompanyTypes = newCodeTable("tipoEmpresa", map[string]string{
		models.CompanyInstaller:      "Instalador SATE",
		models.CompanyRehabilitation: "Rehabilitación integral",
		models.CompanyEngineering:    "Arquitectura Ingeniería",
		models.CompanyOther:          "Otro",
	})

	Priorities = newCodeTable("prioridadLead", map[string]string{
		string(models.PriorityHigh):   "ALTA",
		string(models.PriorityMedium): "MEDIA",
		string(models.PriorityLow):    "BAJA",
	})

	RecordKinds = newCodeTable("tipoUsuario", map[string]string{
		string(models.RecordKindDemand): "DEMANDA",
		string(models.RecordKindSupply): "OFERTA",
	})
)

// Tables returns every code table.
func Tables() []CodeTable {
	return []CodeTable{
		FacadeTypes, EnergyConditions, ConstructionEras, Roles, Portfolios,
		Horizons, VendorStatuses, CompanyTypes, Priorities, RecordKinds,
	}
}
