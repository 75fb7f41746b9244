// internal/models/quantity.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// Quantity is a numeric form value kept as the text the user typed. It
// decodes from either a JSON string or a JSON number.
type Quantity struct {
	raw string
}

func NewQuantity(raw string) Quantity {
	return Quantity{raw: raw}
}

// QuantityOf wraps a number.
func QuantityOf(v float64) Quantity {
	return Quantity{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func (q Quantity) String() string {
	return q.raw
}

// IsBlank reports whether nothing was entered.
func (q Quantity) IsBlank() bool {
	return strings.TrimSpace(q.raw) == ""
}

// Float parses the leading decimal number ("600 m2" -> 600). Blank,
// unparseable, zero or non-finite input yields def.
func (q Quantity) Float(def float64) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(q.raw))
	if m == "" {
		return def
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Int parses the leading integer, truncating any fraction ("5.9" -> 5).
// Blank, unparseable or zero input yields def; out of range input
// saturates to the nearest int bound.
func (q Quantity) Int(def int) int {
	m := intPrefix.FindString(strings.TrimSpace(q.raw))
	if m == "" {
		return def
	}
	v, err := strconv.Atoi(m)
	if errors.Is(err, strconv.ErrRange) {
		if m[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil || v == 0 {
		return def
	}
	return v
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		q.raw = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		q.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity: expected string or number, got %s", b)
	}
	// Numbers are stored in plain decimal so exponent forms read back whole.
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		q.raw = n.String()
		return nil
	}
	q.raw = strconv.FormatFloat(v, 'f', -1, 64)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.raw)
}
