// Package plan holds the declarative description of one building: its
// footprint size, the two levels it spans, the doors and windows in each
// wall, and the roof strategy. Plans are plain values; the builder turns
// them into host elements.
package plan

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/units"
)

// Defaults reproducing the plugin's original building.
const (
	DefaultWidth     units.Length = 10000
	DefaultDepth     units.Length = 5000
	DefaultBaseLevel              = "Level 1"
	DefaultTopLevel               = "Level 2"
	DefaultSill      units.Length = 900
)

// Default family types.
var (
	DefaultDoorType   = TypeRef{Name: "0915 x 2134 mm", Family: "Single-Flush"}
	DefaultWindowType = TypeRef{Name: "0915 x 1830 mm", Family: "Fixed"}
	DefaultRoofType   = TypeRef{Name: "Generic - 400mm", Family: "Basic Roof"}
)

// WallCount is the number of walls around a rectangular footprint.
const WallCount = 4

// OpeningKind distinguishes doors from windows.
type OpeningKind int

const (
	OpeningDoor OpeningKind = iota
	OpeningWindow
)

func (k OpeningKind) String() string {
	switch k {
	case OpeningDoor:
		return "door"
	case OpeningWindow:
		return "window"
	default:
		return fmt.Sprintf("OpeningKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k OpeningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OpeningKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "door":
		*k = OpeningDoor
	case "window":
		*k = OpeningWindow
	default:
		return fmt.Errorf("unknown opening kind %q: %w", b, layout.ErrInvalidArgument)
	}
	return nil
}

// TypeRef names a family type in the host catalogue.
type TypeRef struct {
	Name   string `yaml:"name" json:"name"`
	Family string `yaml:"family" json:"family"`
}

func (r TypeRef) String() string {
	return fmt.Sprintf("%s : %s", r.Family, r.Name)
}

// typeSizePattern matches catalogue names such as "0915 x 2134 mm".
var typeSizePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*mm\s*$`)

// NominalSize parses the width and height encoded in a type name. ok is
// false when the name does not follow the "W x H mm" convention.
func (r TypeRef) NominalSize() (width, height units.Length, ok bool) {
	m := typeSizePattern.FindStringSubmatch(r.Name)
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return units.Length(w), units.Length(h), true
}

// Opening is a door or window hosted by one wall. Walls are numbered in
// footprint winding order starting with the wall along the -y side.
type Opening struct {
	Kind   OpeningKind  `yaml:"kind" json:"kind"`
	Wall   int          `yaml:"wall" json:"wall"`
	Offset units.Length `yaml:"offset" json:"offset"` // along the wall from its midpoint
	Sill   units.Length `yaml:"sill" json:"sill"`
	Type   TypeRef      `yaml:"type" json:"type"`
}

// Size returns the opening size encoded in the type name. The document's
// catalogue has the final say; see CheckSizes.
func (o Opening) Size() (width, height units.Length, ok bool) {
	return o.Type.NominalSize()
}

// Door returns a door on the given wall with the default type.
func Door(wall int) Opening {
	return Opening{Kind: OpeningDoor, Wall: wall, Type: DefaultDoorType}
}

// Window returns a window on the given wall with the default type and sill.
func Window(wall int) Opening {
	return Opening{Kind: OpeningWindow, Wall: wall, Sill: DefaultSill, Type: DefaultWindowType}
}

// Roof selects and parameterises the roof strategy.
type Roof struct {
	Kind         layout.RoofKind `yaml:"kind" json:"kind"`
	Type         TypeRef         `yaml:"type" json:"type"`
	Slope        float64         `yaml:"slope" json:"slope"`
	RidgeRise    float64         `yaml:"ridge_rise" json:"ridge_rise"`
	EaveOverhang float64         `yaml:"eave_overhang" json:"eave_overhang"`
}

// Strategy returns the roof variant to build, or nil for RoofNone.
func (r Roof) Strategy() layout.RoofStrategy {
	switch r.Kind {
	case layout.RoofFootprint:
		return layout.FootprintRoof{Slope: r.Slope}
	case layout.RoofExtrusion:
		return layout.ExtrusionRoof{RidgeRise: r.RidgeRise, EaveOverhang: r.EaveOverhang}
	default:
		return nil
	}
}

// DefaultRoof returns a roof of the given kind with default parameters.
func DefaultRoof(kind layout.RoofKind) Roof {
	r := Roof{Kind: kind}
	if kind != layout.RoofNone {
		r.Type = DefaultRoofType
		r.Slope = layout.DefaultSlopeAngle
		r.RidgeRise = layout.DefaultRidgeRise
		r.EaveOverhang = layout.DefaultEaveOverhang
	}
	return r
}

// Plan describes one building envelope.
type Plan struct {
	Name       string       `yaml:"name" json:"name"`
	Width      units.Length `yaml:"width" json:"width"`
	Depth      units.Length `yaml:"depth" json:"depth"`
	BaseLevel  string       `yaml:"base_level" json:"base_level"`
	TopLevel   string       `yaml:"top_level" json:"top_level"`
	Structural bool         `yaml:"structural" json:"structural"`
	Openings   []Opening    `yaml:"openings" json:"openings"`
	Roof       Roof         `yaml:"roof" json:"roof"`
}

// Default returns the plugin's original building: a 10 x 5 m box between
// "Level 1" and "Level 2", a door in wall 0, a window in each other wall,
// and no roof.
func Default() Plan {
	return Plan{
		Name:      "house",
		Width:     DefaultWidth,
		Depth:     DefaultDepth,
		BaseLevel: DefaultBaseLevel,
		TopLevel:  DefaultTopLevel,
		Openings:  []Opening{Door(0), Window(1), Window(2), Window(3)},
		Roof:      DefaultRoof(layout.RoofNone),
	}
}

// WallLength returns the nominal length of wall i in millimetres. Walls 0
// and 2 span the width; walls 1 and 3 span the depth.
func (p Plan) WallLength(i int) units.Length {
	if i%2 == 0 {
		return p.Width
	}
	return p.Depth
}
