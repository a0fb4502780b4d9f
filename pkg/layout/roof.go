package layout

import (
	"fmt"
)

// DefaultSlopeAngle is the slope assigned to every edge of a
// footprint-based roof.
const DefaultSlopeAngle = 0.5

// DefaultRidgeRise is the height of the gable ridge above the wall tops,
// in internal units.
const DefaultRidgeRise = 7.0

// DefaultEaveOverhang is how far an extruded roof runs past the end walls,
// in internal units.
const DefaultEaveOverhang = 1.0

// GenerateHipProfile returns the per-corner offsets used to grow the wall
// axes outward to the exterior wall faces. It is the footprint rectangle
// sized by half the wall thickness instead of the building size.
func GenerateHipProfile(wallHalfWidth float64) ([FootprintPoints]Vec3, error) {
	if !finite(wallHalfWidth) || wallHalfWidth <= 0 {
		return [FootprintPoints]Vec3{}, fmt.Errorf("wall half width %g: %w", wallHalfWidth, ErrInvalidArgument)
	}
	return rectangle(wallHalfWidth, wallHalfWidth), nil
}

// RoofEdge is one boundary edge of a footprint roof with its slope.
type RoofEdge struct {
	Segment
	Slope float64 `json:"slope"`
}

// HipBoundary offsets the four wall axes (in footprint winding order) by
// the hip profile so the roof outline sits on the exterior wall faces.
// Edge i runs from walls[i].Start+p[i] to walls[i].End+p[i+1].
func HipBoundary(walls [4]Segment, wallHalfWidth, slope float64) ([4]RoofEdge, error) {
	var edges [4]RoofEdge
	p, err := GenerateHipProfile(wallHalfWidth)
	if err != nil {
		return edges, err
	}
	if !finite(slope) {
		return edges, fmt.Errorf("slope %g: %w", slope, ErrInvalidArgument)
	}
	for i, w := range walls {
		edges[i] = RoofEdge{
			Segment: Segment{Start: w.Start.Add(p[i]), End: w.End.Add(p[i+1])},
			Slope:   slope,
		}
	}
	return edges, nil
}
