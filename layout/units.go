package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. The engine computes in points; style
// sheets may be written in any supported unit and renderers convert to mm.

// Unit represents the original unit of a length value as written in a style sheet.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, treated as points
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// A4 page size in points.
const (
	A4Width  = 210 * MmToPt
	A4Height = 297 * MmToPt
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimeters. Unit-less values are points.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	default:
		return l.Value * PtToMm
	}
}

// ToPT converts the length to points. Unit-less values are points.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitPT, UnitNone:
		return l.Value
	default:
		return l.ToMM() * MmToPt
	}
}

// ParseRawLengthStr parses a length string preserving its unit.
// ok is false when the numeric part cannot be parsed.
func ParseRawLengthStr(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
