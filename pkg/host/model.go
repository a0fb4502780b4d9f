package host

import (
	"github.com/paulmach/orb"

	"github.com/chazu/envelope/pkg/layout"
)

// Model is a read-only snapshot of a document's building elements.
type Model struct {
	Levels   []Level   `json:"levels"`
	Types    []Type    `json:"types"`
	Walls    []Wall    `json:"walls"`
	Openings []Opening `json:"openings"`
	Roofs    []Roof    `json:"roofs"`
}

// Wall returns the wall with the given ID.
func (m Model) Wall(id ID) (Wall, bool) {
	for _, w := range m.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// Level returns the level with the given ID.
func (m Model) Level(id ID) (Level, bool) {
	for _, l := range m.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Type returns the family type with the given ID.
func (m Model) Type(id ID) (Type, bool) {
	for _, t := range m.Types {
		if t.ID == id {
			return t, true
		}
	}
	return Type{}, false
}

// OpeningsIn returns the openings hosted by the given wall, in creation
// order.
func (m Model) OpeningsIn(wall ID) []Opening {
	var out []Opening
	for _, o := range m.Openings {
		if o.Wall == wall {
			out = append(out, o)
		}
	}
	return out
}

// Empty reports whether the model holds no building elements.
func (m Model) Empty() bool {
	return len(m.Walls) == 0 && len(m.Openings) == 0 && len(m.Roofs) == 0
}

// Bound returns the plan-view extent of the walls and roofs, including wall
// thickness.
func (m Model) Bound() orb.Bound {
	var pts orb.MultiPoint
	for _, w := range m.Walls {
		t := w.Thickness / 2
		for _, p := range []orb.Point{{w.Axis.Start.X, w.Axis.Start.Y}, {w.Axis.End.X, w.Axis.End.Y}} {
			pts = append(pts, orb.Point{p[0] - t, p[1] - t}, orb.Point{p[0] + t, p[1] + t})
		}
	}
	for _, r := range m.Roofs {
		for _, e := range r.Edges {
			pts = append(pts, orb.Point{e.Start.X, e.Start.Y}, orb.Point{e.End.X, e.End.Y})
		}
		pts = append(pts, r.Outline()...)
	}
	return pts.Bound()
}

// Outline returns the plan-view outline of the roof as a closed ring.
// Footprint roofs use their edges; extrusion roofs sweep the profile ends
// along the plane normal.
func (r Roof) Outline() orb.Ring {
	var ring orb.Ring
	if len(r.Edges) > 0 {
		for _, e := range r.Edges {
			ring = append(ring, orb.Point{e.Start.X, e.Start.Y})
		}
		return closeRing(ring)
	}
	if len(r.Profile) == 0 {
		return nil
	}
	first := r.Profile[0].Start
	last := r.Profile[len(r.Profile)-1].End
	n := r.Plane.Normal
	at := func(p layout.Vec3, d float64) orb.Point {
		return orb.Point{p.X + n.X*d, p.Y + n.Y*d}
	}
	ring = orb.Ring{
		at(first, r.ExtrusionStart),
		at(last, r.ExtrusionStart),
		at(last, r.ExtrusionEnd),
		at(first, r.ExtrusionEnd),
	}
	return closeRing(ring)
}

func closeRing(r orb.Ring) orb.Ring {
	if len(r) > 0 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}
