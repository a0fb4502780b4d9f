package layout

import (
	"fmt"
	"math"

	"github.com/chazu/envelope/pkg/units"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// FootprintPoints is the number of points in a closed rectangular outline:
// four corners plus the repeated start.
const FootprintPoints = 5

// Footprint is the closed plan-view outline of a building envelope,
// centred on the origin at elevation zero.
//
// The winding is counter-clockwise starting at the (-x, -y) corner. Wall
// creation pairs consecutive points, so the winding decides which face of
// every wall is the exterior; it must not be reversed.
type Footprint struct {
	points [FootprintPoints]Vec3
	hx, hy float64
}

// GenerateFootprint returns the outline of a width x depth rectangle.
// Both sizes are in millimetres and are converted to internal units here.
// Non-positive or non-finite sizes are rejected with ErrInvalidArgument.
func GenerateFootprint(width, depth units.Length) (Footprint, error) {
	if !width.IsFinite() || width <= 0 {
		return Footprint{}, fmt.Errorf("footprint width %v: %w", width, ErrInvalidArgument)
	}
	if !depth.IsFinite() || depth <= 0 {
		return Footprint{}, fmt.Errorf("footprint depth %v: %w", depth, ErrInvalidArgument)
	}

	hx := width.Internal() / 2
	hy := depth.Internal() / 2
	return Footprint{points: rectangle(hx, hy), hx: hx, hy: hy}, nil
}

// rectangle returns the closed CCW outline with half extents hx, hy.
func rectangle(hx, hy float64) [FootprintPoints]Vec3 {
	return [FootprintPoints]Vec3{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
		{X: -hx, Y: -hy},
	}
}

// Points returns a copy of the outline, closing point included.
func (f Footprint) Points() []Vec3 {
	out := make([]Vec3, FootprintPoints)
	copy(out, f.points[:])
	return out
}

// Segments returns the four boundary segments in winding order. Segment i
// runs from point i to point i+1; these are the wall axes.
func (f Footprint) Segments() [4]Segment {
	var segs [4]Segment
	for i := range segs {
		segs[i] = Segment{Start: f.points[i], End: f.points[i+1]}
	}
	return segs
}

// HalfExtents returns the half width and half depth in internal units.
func (f Footprint) HalfExtents() (hx, hy float64) {
	return f.hx, f.hy
}

// Ring returns the outline as a closed orb ring in plan view.
func (f Footprint) Ring() orb.Ring {
	r := make(orb.Ring, 0, FootprintPoints)
	for _, p := range f.points {
		r = append(r, orb.Point{p.X, p.Y})
	}
	return r
}

// Area returns the plan area in square internal units.
func (f Footprint) Area() float64 {
	return math.Abs(planar.Area(f.Ring()))
}

// Orientation returns the winding of the outline. A valid footprint is
// always orb.CCW.
func (f Footprint) Orientation() orb.Orientation {
	return f.Ring().Orientation()
}

// Bound returns the plan-view bounding box.
func (f Footprint) Bound() orb.Bound {
	return f.Ring().Bound()
}
