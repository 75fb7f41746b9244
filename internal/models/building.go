// internal/models/building.go
package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Construction era codes.
const (
	EraBefore1979 = "antes-1979"
	Era1980To2006 = "1980-2006"
	Era2007To2013 = "2007-2013"
	Era2014To2020 = "2014-2020"
	Era2021On     = "2021-adelante"
)

// Facade type codes.
const (
	FacadeBrick    = "ladrillo"
	FacadeMonocapa = "monocapa"
	FacadeRender   = "revoco"
	FacadeOther    = "otro"
)

// Energy condition codes.
const (
	ConditionVeryPoor   = "muy-mala"
	ConditionAverage    = "media"
	ConditionAcceptable = "aceptable"
)

// BuildingAttributes is what the owner enters about the building.
type BuildingAttributes struct {
	PostalCode      string         `json:"postalCode" validate:"required,numeric"`
	ConstructionEra string         `json:"constructionEra" validate:"required,oneof=antes-1979 1980-2006 2007-2013 2014-2020 2021-adelante"`
	Floors          Quantity       `json:"floors" validate:"required,quantity"`
	Dwellings       Quantity       `json:"dwellings" validate:"required,quantity"`
	FacadeArea      Quantity       `json:"facadeArea" validate:"required,quantity"`
	FacadeType      string         `json:"facadeType" validate:"required,oneof=ladrillo monocapa revoco otro"`
	EnergyCondition string         `json:"energyCondition" validate:"required,oneof=muy-mala media aceptable"`
	Combine         CombineOptions `json:"combine"`
}

// SanitizePostalCode keeps only the digits of s.
func SanitizePostalCode(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// CombineOption names one of the additional works that can be bundled with
// the facade.
type CombineOption string

const (
	CombineWindows CombineOption = "windows"
	CombineRoof    CombineOption = "roof"
	CombineNone    CombineOption = "none"
)

func ParseCombineOption(s string) (CombineOption, error) {
	switch opt := CombineOption(strings.ToLower(strings.TrimFunc(s, unicode.IsSpace))); opt {
	case CombineWindows, CombineRoof, CombineNone:
		return opt, nil
	default:
		return "", fmt.Errorf("unknown combine option %q (want windows, roof or none)", s)
	}
}

// CombineOptions is the windows/roof/none flag group. None excludes the
// other two; Windows and Roof may both be set.
type CombineOptions struct {
	Windows bool `json:"windows"`
	Roof    bool `json:"roof"`
	None    bool `json:"none"`
}

// Toggle flips opt and returns the new state. Switching None on clears
// Windows and Roof; switching Windows or Roof on clears None. Switching a
// flag off leaves the others alone. Unknown options change nothing.
func (c CombineOptions) Toggle(opt CombineOption) CombineOptions {
	switch opt {
	case CombineWindows:
		c.Windows = !c.Windows
		if c.Windows {
			c.None = false
		}
	case CombineRoof:
		c.Roof = !c.Roof
		if c.Roof {
			c.None = false
		}
	case CombineNone:
		c.None = !c.None
		if c.None {
			c.Windows = false
			c.Roof = false
		}
	}
	return c
}

// Valid reports whether the group respects the exclusion rule.
func (c CombineOptions) Valid() bool {
	return !(c.None && (c.Windows || c.Roof))
}
