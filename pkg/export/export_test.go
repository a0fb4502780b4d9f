package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/envelope/pkg/builder"
	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/host/memhost"
	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/plan"
)

// builtModel builds the default house with the given roof into a fresh
// document and returns its snapshot.
func builtModel(t *testing.T, roof layout.RoofKind) host.Model {
	t.Helper()
	doc := memhost.NewDefault()
	p := plan.Default()
	p.Roof = plan.DefaultRoof(roof)
	if _, err := builder.Build(context.Background(), doc, p); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return doc.Snapshot()
}

func TestEmptyModelIsRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, host.Model{}, DefaultOptions()); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("SVG error = %v, want ErrEmptyModel", err)
	}
	if _, err := Image(host.Model{}, DefaultOptions()); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Image error = %v, want ErrEmptyModel", err)
	}
	if err := DXF(filepath.Join(t.TempDir(), "x.dxf"), host.Model{}); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("DXF error = %v, want ErrEmptyModel", err)
	}
}

func TestViewSizeAndOrientation(t *testing.T) {
	m := host.Model{Walls: []host.Wall{{
		ID:        "w",
		Axis:      layout.Segment{End: layout.Vec3{X: 10}},
		Thickness: 1,
		Height:    8,
	}}}
	v, err := newView(m, Options{Scale: 10, Margin: 5})
	if err != nil {
		t.Fatal(err)
	}
	w, h := v.size()
	if w != 120 || h != 20 {
		t.Errorf("size = %dx%d, want 120x20", w, h)
	}
	// Plan Y grows up, image Y grows down.
	_, yLow := v.pt([2]float64{0, -0.5})
	_, yHigh := v.pt([2]float64{0, 0.5})
	if yHigh >= yLow {
		t.Errorf("expected higher plan Y to map above lower plan Y, got %v >= %v", yHigh, yLow)
	}
}

func TestOptionsNormalised(t *testing.T) {
	o := Options{Scale: -1, Margin: -3}.normalised()
	d := DefaultOptions()
	if o.Scale != d.Scale || o.Margin != d.Margin {
		t.Errorf("normalised = %+v, want defaults %+v", o, d)
	}
}

func TestSVG(t *testing.T) {
	tests := []struct {
		name  string
		roof  layout.RoofKind
		title string
	}{
		{"no roof", layout.RoofNone, ""},
		{"footprint roof", layout.RoofFootprint, "House A"},
		{"extrusion roof", layout.RoofExtrusion, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := builtModel(t, tt.roof)
			var buf bytes.Buffer
			o := DefaultOptions()
			o.Title = tt.title
			if err := SVG(&buf, m, o); err != nil {
				t.Fatalf("SVG: %v", err)
			}
			out := buf.String()
			if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
				t.Fatalf("output is not a complete SVG document:\n%s", out)
			}
			// Four walls, four openings, and one outline per roof.
			want := 8 + len(m.Roofs)
			if got := strings.Count(out, "<polygon"); got != want {
				t.Errorf("polygon count = %d, want %d", got, want)
			}
			if tt.title != "" && !strings.Contains(out, tt.title) {
				t.Errorf("title %q missing", tt.title)
			}
			for _, g := range []string{`id="walls"`, `id="openings"`, `id="roofs"`} {
				if !strings.Contains(out, g) {
					t.Errorf("missing group %s", g)
				}
			}
		})
	}
}

func TestDXF(t *testing.T) {
	m := builtModel(t, layout.RoofFootprint)
	path := filepath.Join(t.TempDir(), "house.dxf")
	if err := DXF(path, m); err != nil {
		t.Fatalf("DXF: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, layer := range []string{LayerWallAxes, LayerWalls, LayerDoors, LayerWindows, LayerRoof} {
		if !strings.Contains(out, layer) {
			t.Errorf("layer %s missing from output", layer)
		}
	}
	if !strings.Contains(out, "LWPOLYLINE") {
		t.Error("expected LWPOLYLINE entities")
	}
	if !strings.Contains(out, "LINE") {
		t.Error("expected LINE entities")
	}
}

func TestDXFBadPath(t *testing.T) {
	m := builtModel(t, layout.RoofNone)
	err := DXF(filepath.Join(t.TempDir(), "missing", "house.dxf"), m)
	if err == nil {
		t.Fatal("expected an error saving into a missing directory")
	}
}

func TestPNG(t *testing.T) {
	m := builtModel(t, layout.RoofExtrusion)
	path := filepath.Join(t.TempDir(), "house.png")
	o := DefaultOptions()
	if err := PNG(path, m, o); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, _ := newView(m, o)
	w, h := v.size()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), w, h)
	}

	// The middle of wall 0 (the south wall) is filled.
	axis := m.Walls[0].Axis
	mid := axis.Mid()
	x, y := v.pt([2]float64{mid.X + axis.Dir().X*4, mid.Y + axis.Dir().Y*4})
	r, g, b, _ := img.At(int(x), int(y)).RGBA()
	if r>>8 == 0xff && g>>8 == 0xff && b>>8 == 0xff {
		t.Errorf("pixel at wall (%d,%d) is background", int(x), int(y))
	}
}
