// Package export draws plan views of a host model: SVG and PNG previews
// and DXF drawings for CAD exchange.
package export

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/layout"
)

// ErrEmptyModel is returned when there is nothing to draw.
var ErrEmptyModel = errors.New("export: model has no elements")

// Options controls raster and vector previews.
type Options struct {
	// Scale is the number of pixels per internal unit.
	Scale float64
	// Margin is the blank border around the drawing, in pixels.
	Margin int
	// Title is drawn in the top-left corner when set.
	Title string
}

// DefaultOptions returns the preview settings used by the CLI and the app.
func DefaultOptions() Options {
	return Options{Scale: 20, Margin: 24}
}

func (o Options) normalised() Options {
	d := DefaultOptions()
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Margin < 0 {
		o.Margin = d.Margin
	}
	return o
}

// view maps plan coordinates (Y up) onto image pixels (Y down).
type view struct {
	bound  orb.Bound
	scale  float64
	margin float64
}

func newView(m host.Model, o Options) (view, error) {
	if m.Empty() {
		return view{}, ErrEmptyModel
	}
	o = o.normalised()
	return view{bound: m.Bound(), scale: o.Scale, margin: float64(o.Margin)}, nil
}

func (v view) size() (w, h int) {
	w = int(math.Ceil((v.bound.Right()-v.bound.Left())*v.scale + 2*v.margin))
	h = int(math.Ceil((v.bound.Top()-v.bound.Bottom())*v.scale + 2*v.margin))
	return max(w, 1), max(h, 1)
}

func (v view) pt(p orb.Point) (x, y float64) {
	x = v.margin + (p[0]-v.bound.Left())*v.scale
	y = v.margin + (v.bound.Top()-p[1])*v.scale
	return x, y
}

func (v view) ints(r orb.Ring) (xs, ys []int) {
	for _, p := range r {
		x, y := v.pt(p)
		xs = append(xs, int(math.Round(x)))
		ys = append(ys, int(math.Round(y)))
	}
	return xs, ys
}

// rect returns the closed outline of a band of the given width centred on
// the segment from a to b.
func rect(a, b layout.Vec3, width float64) orb.Ring {
	d := b.Sub(a).XY().Unit()
	n := layout.Vec3{X: -d.Y, Y: d.X}.Scale(width / 2)
	pts := []layout.Vec3{a.Sub(n), b.Sub(n), b.Add(n), a.Add(n), a.Sub(n)}
	ring := make(orb.Ring, len(pts))
	for i, p := range pts {
		ring[i] = orb.Point{p.X, p.Y}
	}
	return ring
}

// wallOutline is the plan outline of a wall, grown by half the thickness
// at each end so corners close.
func wallOutline(w host.Wall) orb.Ring {
	d := w.Axis.Dir().XY().Scale(w.Thickness / 2)
	return rect(w.Axis.Start.Sub(d), w.Axis.End.Add(d), w.Thickness)
}

// openingOutline is the plan outline of an opening cut through its host
// wall. It reports false if the wall is missing from the model.
func openingOutline(m host.Model, o host.Opening) (orb.Ring, bool) {
	w, ok := m.Wall(o.Wall)
	if !ok {
		return nil, false
	}
	d := w.Axis.Dir().XY().Scale(o.Width / 2)
	c := o.Position.XY()
	return rect(c.Sub(d), c.Add(d), w.Thickness), true
}
