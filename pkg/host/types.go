package host

import (
	"fmt"

	"github.com/chazu/envelope/pkg/layout"
)

// ID identifies an element in a document.
type ID string

// Category groups family types.
type Category int

const (
	CategoryDoors Category = iota
	CategoryWindows
	CategoryRoofs
)

func (c Category) String() string {
	switch c {
	case CategoryDoors:
		return "doors"
	case CategoryWindows:
		return "windows"
	case CategoryRoofs:
		return "roofs"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Level is a named horizontal datum. Elevation is in internal units.
type Level struct {
	ID        ID      `json:"id"`
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
}

// Type is a family type from the document catalogue. Doors and windows
// carry their rough opening size; roofs carry their thickness. Sizes are in
// internal units.
type Type struct {
	ID        ID       `json:"id"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	Family    string   `json:"family"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Thickness float64  `json:"thickness,omitempty"`
	Active    bool     `json:"active"`
}

func (t Type) String() string {
	return fmt.Sprintf("%s %s : %s", t.Category, t.Family, t.Name)
}

// Wall is a straight wall along Axis from its base level. Height is the
// unconnected height until a top level is set, after which it follows the
// level difference.
type Wall struct {
	ID         ID             `json:"id"`
	Axis       layout.Segment `json:"axis"`
	BaseLevel  ID             `json:"base_level"`
	TopLevel   ID             `json:"top_level,omitempty"`
	Thickness  float64        `json:"thickness"`
	Height     float64        `json:"height"`
	Structural bool           `json:"structural"`
}

// Opening is a door or window instance hosted by a wall. Position is the
// insertion point: centred in the wall width, at sill height.
type Opening struct {
	ID       ID          `json:"id"`
	Category Category    `json:"category"`
	Type     ID          `json:"type"`
	Wall     ID          `json:"wall"`
	Level    ID          `json:"level"`
	Position layout.Vec3 `json:"position"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
}

// Roof is either a footprint roof (Edges set) or an extrusion roof
// (Profile and Plane set).
type Roof struct {
	ID        ID              `json:"id"`
	Kind      layout.RoofKind `json:"kind"`
	Type      ID              `json:"type"`
	Level     ID              `json:"level"`
	Thickness float64         `json:"thickness"`

	Edges []layout.RoofEdge `json:"edges,omitempty"`

	Profile        []layout.Segment `json:"profile,omitempty"`
	Plane          layout.Plane     `json:"plane"`
	ExtrusionStart float64          `json:"extrusion_start,omitempty"`
	ExtrusionEnd   float64          `json:"extrusion_end,omitempty"`
}
