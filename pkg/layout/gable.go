package layout

import (
	"fmt"

	"github.com/chazu/envelope/pkg/units"
)

// GableParams describes the inputs of an extruded gable roof. All values
// except OverallWidth are already in internal units; WallHeight and
// WallHalfWidth are normally read back from a placed wall.
type GableParams struct {
	WallHalfWidth float64
	WallHeight    float64
	RidgeRise     float64
	OverallWidth  units.Length
	EaveOverhang  float64

	// Reference is the axis of the wall the profile is drawn against. The
	// profile spans the reference wall from end to end and the roof is
	// extruded perpendicular to it.
	Reference Segment
}

// Plane is a vertical reference plane given by a point and a unit normal.
type Plane struct {
	Origin Vec3 `json:"origin"`
	Normal Vec3 `json:"normal"`
}

// GableProfile is the ridge cross-section of an extruded gable roof.
type GableProfile struct {
	EaveStart Vec3  `json:"eave_start"`
	Ridge     Vec3  `json:"ridge"`
	EaveEnd   Vec3  `json:"eave_end"`
	Plane     Plane `json:"plane"`

	// Overhang is the half extrusion length: half the building width plus
	// the eave overhang past the end walls.
	Overhang       float64 `json:"overhang"`
	ExtrusionStart float64 `json:"extrusion_start"`
	ExtrusionEnd   float64 `json:"extrusion_end"`
}

// GenerateGableExtrusionProfile computes the two-slope profile over the
// reference wall. The eaves sit at wall-top height, pushed past each end
// of the reference axis by half the wall thickness; the ridge sits
// RidgeRise above them, halfway between.
func GenerateGableExtrusionProfile(p GableParams) (GableProfile, error) {
	switch {
	case !finite(p.WallHalfWidth) || p.WallHalfWidth < 0:
		return GableProfile{}, fmt.Errorf("wall half width %g: %w", p.WallHalfWidth, ErrInvalidArgument)
	case !finite(p.WallHeight) || p.WallHeight < 0:
		return GableProfile{}, fmt.Errorf("wall height %g: %w", p.WallHeight, ErrInvalidArgument)
	case !finite(p.RidgeRise) || p.RidgeRise <= 0:
		return GableProfile{}, fmt.Errorf("ridge rise %g: %w", p.RidgeRise, ErrInvalidArgument)
	case !finite(p.EaveOverhang):
		return GableProfile{}, fmt.Errorf("eave overhang %g: %w", p.EaveOverhang, ErrInvalidArgument)
	case !p.OverallWidth.IsFinite() || p.OverallWidth <= 0:
		return GableProfile{}, fmt.Errorf("overall width %v: %w", p.OverallWidth, ErrInvalidArgument)
	case !p.Reference.Start.IsFinite() || !p.Reference.End.IsFinite() || p.Reference.Len() == 0:
		return GableProfile{}, fmt.Errorf("reference wall %v-%v: %w", p.Reference.Start, p.Reference.End, ErrInvalidArgument)
	}

	u := p.Reference.Dir().XY().Unit()
	up := Vec3{Z: p.WallHeight}

	eaveStart := p.Reference.Start.Sub(u.Scale(p.WallHalfWidth)).Add(up)
	eaveEnd := p.Reference.End.Add(u.Scale(p.WallHalfWidth)).Add(up)
	ridge := eaveStart.Mid(eaveEnd).Add(Vec3{Z: p.RidgeRise})

	dx := Overhang(p.OverallWidth, p.EaveOverhang)

	return GableProfile{
		EaveStart: eaveStart,
		Ridge:     ridge,
		EaveEnd:   eaveEnd,
		Plane: Plane{
			Origin: p.Reference.Mid(),
			Normal: Vec3{X: u.Y, Y: -u.X},
		},
		Overhang:       dx,
		ExtrusionStart: -dx,
		ExtrusionEnd:   dx,
	}, nil
}

// Overhang returns half the extrusion length of a gable roof over a
// building of the given width.
func Overhang(overallWidth units.Length, eave float64) float64 {
	return overallWidth.Internal()/2 + eave
}

// Curve returns the profile curve handed to an extrusion roof: the two
// slope segments joined at the ridge.
func (g GableProfile) Curve() []Segment {
	return []Segment{
		{Start: g.EaveStart, End: g.Ridge},
		{Start: g.Ridge, End: g.EaveEnd},
	}
}

// Points returns the profile polyline eave, ridge, eave.
func (g GableProfile) Points() []Vec3 {
	return []Vec3{g.EaveStart, g.Ridge, g.EaveEnd}
}

// Section returns the closed cross-section including the return points
// below each eave at the plane origin's elevation.
func (g GableProfile) Section() []Vec3 {
	startFloor := Vec3{X: g.EaveStart.X, Y: g.EaveStart.Y, Z: g.Plane.Origin.Z}
	endFloor := Vec3{X: g.EaveEnd.X, Y: g.EaveEnd.Y, Z: g.Plane.Origin.Z}
	return []Vec3{startFloor, g.EaveStart, g.Ridge, g.EaveEnd, endFloor, startFloor}
}

// Span returns the horizontal eave-to-eave distance.
func (g GableProfile) Span() float64 {
	return g.EaveEnd.XY().Sub(g.EaveStart.XY()).Len()
}

// Rise returns the ridge height above the eaves.
func (g GableProfile) Rise() float64 {
	return g.Ridge.Z - g.EaveStart.Z
}
