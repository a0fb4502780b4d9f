package plan

import (
	"testing"

	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/units"
)

func TestDefaultMatchesOriginalBuilding(t *testing.T) {
	p := Default()
	if p.Width != 10000 || p.Depth != 5000 {
		t.Errorf("size = %v x %v, want 10000mm x 5000mm", p.Width, p.Depth)
	}
	if p.BaseLevel != "Level 1" || p.TopLevel != "Level 2" {
		t.Errorf("levels = %q/%q", p.BaseLevel, p.TopLevel)
	}
	if len(p.Openings) != 4 {
		t.Fatalf("len(Openings) = %d, want 4", len(p.Openings))
	}
	if p.Openings[0].Kind != OpeningDoor || p.Openings[0].Wall != 0 {
		t.Errorf("opening 0 = %+v, want a door in wall 0", p.Openings[0])
	}
	for i := 1; i < 4; i++ {
		o := p.Openings[i]
		if o.Kind != OpeningWindow || o.Wall != i || o.Sill != 900 {
			t.Errorf("opening %d = %+v, want a window in wall %d with a 900mm sill", i, o, i)
		}
	}
	if p.Roof.Kind != layout.RoofNone || p.Roof.Strategy() != nil {
		t.Errorf("default roof = %+v, want none", p.Roof)
	}
}

func TestNominalSize(t *testing.T) {
	tests := []struct {
		name       string
		typeName   string
		wantW      units.Length
		wantH      units.Length
		wantParsed bool
	}{
		{"door", "0915 x 2134 mm", 915, 2134, true},
		{"window", "0915 x 1830 mm", 915, 1830, true},
		{"no spaces", "600x900mm", 600, 900, true},
		{"decimal", "762.5 X 2032 mm", 762.5, 2032, true},
		{"free text", "Generic - 400mm", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := TypeRef{Name: tt.typeName}.NominalSize()
			if ok != tt.wantParsed || w != tt.wantW || h != tt.wantH {
				t.Errorf("NominalSize(%q) = %v, %v, %v; want %v, %v, %v", tt.typeName, w, h, ok, tt.wantW, tt.wantH, tt.wantParsed)
			}
		})
	}
}

func TestNominalSizes(t *testing.T) {
	p := Default()
	p.Openings = append(p.Openings, Opening{Kind: OpeningWindow, Wall: 2, Type: TypeRef{Name: "Picture", Family: "Fixed"}})
	sizes := NominalSizes(p)
	if len(sizes) != len(p.Openings) {
		t.Fatalf("len(sizes) = %d, want %d", len(sizes), len(p.Openings))
	}
	if sizes[0] != (Size{Width: 915, Height: 2134}) {
		t.Errorf("door size = %+v, want 915 x 2134", sizes[0])
	}
	if sizes[1] != (Size{Width: 915, Height: 1830}) {
		t.Errorf("window size = %+v, want 915 x 1830", sizes[1])
	}
	if last := sizes[len(sizes)-1]; last != (Size{}) {
		t.Errorf("unnamed size = %+v, want zero", last)
	}
}

func TestRoofStrategy(t *testing.T) {
	s := DefaultRoof(layout.RoofExtrusion).Strategy()
	er, ok := s.(layout.ExtrusionRoof)
	if !ok {
		t.Fatalf("Strategy() = %T, want layout.ExtrusionRoof", s)
	}
	if er.RidgeRise != layout.DefaultRidgeRise || er.EaveOverhang != layout.DefaultEaveOverhang {
		t.Errorf("ExtrusionRoof = %+v", er)
	}

	s = DefaultRoof(layout.RoofFootprint).Strategy()
	fr, ok := s.(layout.FootprintRoof)
	if !ok || fr.Slope != layout.DefaultSlopeAngle {
		t.Errorf("Strategy() = %#v, want FootprintRoof with default slope", s)
	}
}

func TestWallLength(t *testing.T) {
	p := Default()
	want := []units.Length{10000, 5000, 10000, 5000}
	for i, w := range want {
		if got := p.WallLength(i); got != w {
			t.Errorf("WallLength(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestOpeningKindText(t *testing.T) {
	var k OpeningKind
	if err := k.UnmarshalText([]byte("window")); err != nil || k != OpeningWindow {
		t.Errorf("UnmarshalText(window) = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("hatch")); err == nil {
		t.Error("UnmarshalText(hatch) error = nil")
	}
	b, _ := OpeningDoor.MarshalText()
	if string(b) != "door" {
		t.Errorf("MarshalText() = %q", b)
	}
}
