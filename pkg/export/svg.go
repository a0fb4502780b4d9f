package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/envelope/pkg/host"
)

const (
	svgWallStyle   = "fill:#9a9a9a;stroke:#202020;stroke-width:1"
	svgDoorStyle   = "fill:#ffffff;stroke:#b03a2e;stroke-width:1"
	svgWindowStyle = "fill:#ffffff;stroke:#2e86c1;stroke-width:1"
	svgRoofStyle   = "fill:none;stroke:#1e8449;stroke-width:1;stroke-dasharray:6,4"
	svgTitleStyle  = "font-family:sans-serif;font-size:14px;fill:#202020"
)

// SVG writes a plan view of the model: roofs dashed, walls filled and
// openings drawn over their walls.
func SVG(w io.Writer, m host.Model, o Options) error {
	v, err := newView(m, o)
	if err != nil {
		return err
	}
	width, height := v.size()

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("%d walls, %d openings, %d roofs", len(m.Walls), len(m.Openings), len(m.Roofs)))

	canvas.Gid("roofs")
	for _, r := range m.Roofs {
		xs, ys := v.ints(r.Outline())
		canvas.Polygon(xs, ys, svgRoofStyle)
	}
	canvas.Gend()

	canvas.Gid("walls")
	for _, wall := range m.Walls {
		xs, ys := v.ints(wallOutline(wall))
		canvas.Polygon(xs, ys, svgWallStyle)
	}
	canvas.Gend()

	canvas.Gid("openings")
	for _, op := range m.Openings {
		ring, ok := openingOutline(m, op)
		if !ok {
			continue
		}
		style := svgWindowStyle
		if op.Category == host.CategoryDoors {
			style = svgDoorStyle
		}
		xs, ys := v.ints(ring)
		canvas.Polygon(xs, ys, style)
	}
	canvas.Gend()

	if o.Title != "" {
		x, y := v.titleAt()
		canvas.Text(x, y, o.Title, svgTitleStyle)
	}
	canvas.End()
	return nil
}

// titleAt is the baseline of the title text, inside the top margin.
func (v view) titleAt() (x, y int) {
	return int(v.margin / 2), int(v.margin/2) + 4
}
