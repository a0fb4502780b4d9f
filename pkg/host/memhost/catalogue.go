package memhost

import (
	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/units"
)

// DefaultLevels are the levels of the standard template, elevations in
// millimetres.
var DefaultLevels = []struct {
	Name      string
	Elevation units.Length
}{
	{"Level 1", 0},
	{"Level 2", 4000},
}

// DefaultCatalogue is the family-type catalogue of the standard template.
// Door and window types start inactive, as loaded families do.
var DefaultCatalogue = []TypeSpec{
	{Category: host.CategoryDoors, Family: "Single-Flush", Name: "0915 x 2134 mm", Width: 915, Height: 2134},
	{Category: host.CategoryDoors, Family: "Single-Flush", Name: "0762 x 2032 mm", Width: 762, Height: 2032},
	{Category: host.CategoryWindows, Family: "Fixed", Name: "0915 x 1830 mm", Width: 915, Height: 1830},
	{Category: host.CategoryWindows, Family: "Fixed", Name: "0915 x 1220 mm", Width: 915, Height: 1220},
	{Category: host.CategoryWindows, Family: "Fixed", Name: "0610 x 1830 mm", Width: 610, Height: 1830},
	{Category: host.CategoryRoofs, Family: "Basic Roof", Name: "Generic - 400mm", Thickness: 400, Active: true},
	{Category: host.CategoryRoofs, Family: "Basic Roof", Name: "Generic - 300mm", Thickness: 300, Active: true},
}

// NewDefault returns a document seeded with DefaultLevels and
// DefaultCatalogue.
func NewDefault(opts ...Option) *Document {
	d := New(opts...)
	for _, l := range DefaultLevels {
		d.AddLevel(l.Name, l.Elevation)
	}
	for _, t := range DefaultCatalogue {
		d.AddType(t)
	}
	return d
}
