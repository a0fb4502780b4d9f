// Package layout computes the geometry of a rectangular building envelope:
// the footprint polygon that the walls follow, the outline of a
// footprint-based roof, the cross-section of an extruded gable roof, and the
// insertion points of doors and windows.
//
// Everything here is pure arithmetic over value inputs. Nothing in this
// package talks to a host document; callers feed the returned points into
// whatever modeling backend they drive.
package layout

import "errors"

// ErrInvalidArgument is returned when a numeric input cannot describe a
// real building (non-positive size, NaN, zero-length wall and so on).
var ErrInvalidArgument = errors.New("invalid argument")
