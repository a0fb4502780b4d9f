// Package units converts linear measurements between millimetres, the unit
// used at every input boundary, and the internal base unit (the foot).
//
// A value is converted exactly once, when it enters the system. Inputs are
// carried as Length; code that works in internal units takes plain float64,
// so a converted value cannot be converted a second time without an
// explicit cast back to Length.
package units

import (
	"fmt"
	"math"
)

// MillimetresPerFoot is the fixed scale between the boundary unit and the
// internal base unit.
const MillimetresPerFoot = 304.8

// Length is a linear measurement in millimetres.
type Length float64

// Millimetres returns l as a raw millimetre value.
func (l Length) Millimetres() float64 {
	return float64(l)
}

// Internal converts l to the internal base unit.
func (l Length) Internal() float64 {
	return ToInternal(float64(l))
}

// IsFinite reports whether l is neither NaN nor infinite.
func (l Length) IsFinite() bool {
	f := float64(l)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (l Length) String() string {
	return fmt.Sprintf("%gmm", float64(l))
}

// ToInternal converts a millimetre value to internal units.
func ToInternal(mm float64) float64 {
	return mm / MillimetresPerFoot
}

// FromInternal converts an internal value back to millimetres for
// display, export and size checks. It is never fed back into geometry.
func FromInternal(v float64) Length {
	return Length(v * MillimetresPerFoot)
}
