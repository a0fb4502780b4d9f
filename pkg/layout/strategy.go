package layout

import "fmt"

// RoofKind names a roof construction strategy.
type RoofKind int

const (
	RoofNone      RoofKind = iota // walls only
	RoofFootprint                 // sloped edges over the wall outline
	RoofExtrusion                 // gable profile extruded along the ridge
)

func (k RoofKind) String() string {
	switch k {
	case RoofNone:
		return "none"
	case RoofFootprint:
		return "footprint"
	case RoofExtrusion:
		return "extrusion"
	default:
		return fmt.Sprintf("RoofKind(%d)", int(k))
	}
}

// ParseRoofKind is the inverse of RoofKind.String.
func ParseRoofKind(s string) (RoofKind, error) {
	switch s {
	case "", "none":
		return RoofNone, nil
	case "footprint", "hip":
		return RoofFootprint, nil
	case "extrusion", "gable":
		return RoofExtrusion, nil
	}
	return RoofNone, fmt.Errorf("unknown roof kind %q: %w", s, ErrInvalidArgument)
}

// MarshalText implements encoding.TextMarshaler.
func (k RoofKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RoofKind) UnmarshalText(b []byte) error {
	v, err := ParseRoofKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// RoofStrategy selects how a roof is built over the walls. The caller
// picks a variant; the builder switches on the concrete type.
type RoofStrategy interface {
	Kind() RoofKind
}

// FootprintRoof builds the roof from the wall outline, assigning Slope to
// every boundary edge.
type FootprintRoof struct {
	Slope float64
}

func (FootprintRoof) Kind() RoofKind { return RoofFootprint }

// ExtrusionRoof extrudes a gable profile drawn over a reference wall.
type ExtrusionRoof struct {
	RidgeRise    float64
	EaveOverhang float64
}

func (ExtrusionRoof) Kind() RoofKind { return RoofExtrusion }
