package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/units"
)

// DXF layer names.
const (
	LayerWallAxes = "WALL-AXES"
	LayerWalls    = "WALLS"
	LayerDoors    = "DOORS"
	LayerWindows  = "WINDOWS"
	LayerRoof     = "ROOF"
)

// DXF writes the model to a DXF drawing at path. Coordinates are in
// millimetres. Wall axes are lines, wall faces and openings are closed
// polylines, and roof edges are lines on the roof layer.
func DXF(path string, m host.Model) error {
	if m.Empty() {
		return ErrEmptyModel
	}
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	layers := []struct {
		name string
		c    color.ColorNumber
	}{
		{LayerWallAxes, color.Red},
		{LayerWalls, color.Blue},
		{LayerDoors, color.Yellow},
		{LayerWindows, color.Cyan},
		{LayerRoof, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.c, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("export: add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerWallAxes); err != nil {
		return err
	}
	for _, w := range m.Walls {
		a, b := w.Axis.Start, w.Axis.End
		if _, err := d.Line(mm(a.X), mm(a.Y), mm(a.Z), mm(b.X), mm(b.Y), mm(b.Z)); err != nil {
			return fmt.Errorf("export: wall axis %s: %w", w.ID, err)
		}
	}

	if err := d.ChangeLayer(LayerWalls); err != nil {
		return err
	}
	for _, w := range m.Walls {
		d.AddEntity(polyline(wallOutline(w)))
	}

	for _, o := range m.Openings {
		ring, ok := openingOutline(m, o)
		if !ok {
			continue
		}
		layer := LayerWindows
		if o.Category == host.CategoryDoors {
			layer = LayerDoors
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		d.AddEntity(polyline(ring))
	}

	if err := d.ChangeLayer(LayerRoof); err != nil {
		return err
	}
	for _, r := range m.Roofs {
		if err := roofLines(d, r); err != nil {
			return fmt.Errorf("export: roof %s: %w", r.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func roofLines(d *drawing.Drawing, r host.Roof) error {
	if len(r.Edges) > 0 {
		for _, e := range r.Edges {
			if _, err := d.Line(mm(e.Start.X), mm(e.Start.Y), 0, mm(e.End.X), mm(e.End.Y), 0); err != nil {
				return err
			}
		}
		return nil
	}
	ring := r.Outline()
	for i := 0; i+1 < len(ring); i++ {
		a, b := ring[i], ring[i+1]
		if _, err := d.Line(mm(a[0]), mm(a[1]), 0, mm(b[0]), mm(b[1]), 0); err != nil {
			return err
		}
	}
	return nil
}

func polyline(r orb.Ring) *entity.LwPolyline {
	lwp := entity.NewLwPolyline(len(r))
	for j, p := range r {
		lwp.Vertices[j] = []float64{mm(p[0]), mm(p[1])}
	}
	return lwp
}

func mm(v float64) float64 {
	return units.FromInternal(v).Millimetres()
}
