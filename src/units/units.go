// Package units defines the momentum and length units an event can be
// expressed in, together with the conversion factors between them.
package units

import (
	"fmt"
	"strings"
)

// MomentumUnit identifies the unit of momenta, energies and masses.
type MomentumUnit uint8

// Momentum units.
const (
	UnknownMomentum MomentumUnit = iota
	EV
	KEV
	MEV
	GEV
	TEV
)

// LengthUnit identifies the unit of vertex positions.
type LengthUnit uint8

// Length units.
const (
	UnknownLength LengthUnit = iota
	MM
	CM
	M
)

// Default units of newly created events.
const (
	DefaultMomentum = GEV
	DefaultLength   = MM
)

var momentumNames = map[MomentumUnit]string{
	UnknownMomentum: "UNKNOWN",
	EV:              "EV",
	KEV:             "KEV",
	MEV:             "MEV",
	GEV:             "GEV",
	TEV:             "TEV",
}

var lengthNames = map[LengthUnit]string{
	UnknownLength: "UNKNOWN",
	MM:            "MM",
	CM:            "CM",
	M:             "M",
}

// scale factors relative to eV and mm.
var momentumScale = map[MomentumUnit]float64{
	EV:  1,
	KEV: 1e3,
	MEV: 1e6,
	GEV: 1e9,
	TEV: 1e12,
}

var lengthScale = map[LengthUnit]float64{
	MM: 1,
	CM: 10,
	M:  1000,
}

// String returns the name used in the U record.
func (u MomentumUnit) String() string {
	if n, ok := momentumNames[u]; ok {
		return n
	}
	return fmt.Sprintf("MomentumUnit(%d)", uint8(u))
}

// String returns the name used in the U record.
func (u LengthUnit) String() string {
	if n, ok := lengthNames[u]; ok {
		return n
	}
	return fmt.Sprintf("LengthUnit(%d)", uint8(u))
}

// ParseMomentumUnit parses a momentum unit name, case-insensitively.
func ParseMomentumUnit(s string) (MomentumUnit, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for u, n := range momentumNames {
		if u != UnknownMomentum && n == name {
			return u, nil
		}
	}
	return UnknownMomentum, fmt.Errorf("unknown momentum unit %q", s)
}

// ParseLengthUnit parses a length unit name, case-insensitively. "METER" is
// accepted as an alias of M.
func ParseLengthUnit(s string) (LengthUnit, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "METER" {
		return M, nil
	}
	for u, n := range lengthNames {
		if u != UnknownLength && n == name {
			return u, nil
		}
	}
	return UnknownLength, fmt.Errorf("unknown length unit %q", s)
}

// MomentumConversionFactor returns the factor that converts a value
// expressed in from into a value expressed in to. It returns 0 when either
// unit is unknown.
func MomentumConversionFactor(from, to MomentumUnit) float64 {
	f, okf := momentumScale[from]
	t, okt := momentumScale[to]
	if !okf || !okt {
		return 0
	}
	return f / t
}

// LengthConversionFactor returns the factor that converts a value expressed
// in from into a value expressed in to. It returns 0 when either unit is
// unknown.
func LengthConversionFactor(from, to LengthUnit) float64 {
	f, okf := lengthScale[from]
	t, okt := lengthScale[to]
	if !okf || !okt {
		return 0
	}
	return f / t
}
