// Package tessellate turns a host model snapshot into triangle meshes
// using a geometry kernel. One mesh is produced per wall and per roof.
package tessellate

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/kernel"
	"github.com/chazu/envelope/pkg/layout"
)

// ErrKernel is returned when the geometry kernel rejects a solid.
var ErrKernel = errors.New("tessellate: kernel failure")

// MinRoofThickness is used for roofs whose type carries no thickness.
const MinRoofThickness = 0.1

// Tessellate produces one mesh per wall (openings cut out) followed by one
// mesh per roof. Part names are "wall/<n>" and "roof/<n>" in model order.
// The tessellator is read-only and never mutates the model.
func Tessellate(model host.Model, k kernel.Kernel) (meshes []*kernel.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			meshes = nil
			err = fmt.Errorf("%w: %v", ErrKernel, r)
		}
	}()

	for i, w := range model.Walls {
		solid, err := wallSolid(k, w, model.OpeningsIn(w.ID))
		if err != nil {
			return nil, fmt.Errorf("tessellate: wall %d: %w", i, err)
		}
		mesh, err := toMesh(k, solid, fmt.Sprintf("wall/%d", i))
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}

	for i, r := range model.Roofs {
		solid, err := roofSolid(k, model, r)
		if err != nil {
			return nil, fmt.Errorf("tessellate: roof %d: %w", i, err)
		}
		mesh, err := toMesh(k, solid, fmt.Sprintf("roof/%d", i))
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

func toMesh(k kernel.Kernel, s kernel.Solid, name string) (*kernel.Mesh, error) {
	mesh, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", name, err)
	}
	mesh.PartName = name
	return mesh, nil
}

// wallSolid builds the wall in its local frame (x along the axis, centred
// on the midpoint) and then rotates it onto the axis. The length is grown
// by the thickness so neighbouring walls close their corners.
func wallSolid(k kernel.Kernel, w host.Wall, openings []host.Opening) (kernel.Solid, error) {
	length := w.Axis.Len()
	if length == 0 || w.Thickness <= 0 || w.Height <= 0 {
		return nil, fmt.Errorf("degenerate wall %s (length %g, thickness %g, height %g)", w.ID, length, w.Thickness, w.Height)
	}

	solid := k.Box(length+w.Thickness, w.Thickness, w.Height)

	mid := w.Axis.Mid()
	dir := w.Axis.Dir()
	for _, o := range openings {
		x := o.Position.Sub(mid).XY().Dot(dir.XY())
		sill := o.Position.Z - w.Axis.Start.Z
		cut := k.Box(o.Width, w.Thickness*2, o.Height)
		cut = k.Translate(cut, x, 0, sill+o.Height/2-w.Height/2)
		solid = k.Difference(solid, cut)
	}

	if a := degrees(math.Atan2(dir.Y, dir.X)); a != 0 {
		solid = k.Rotate(solid, 0, 0, a)
	}
	return k.Translate(solid, mid.X, mid.Y, w.Axis.Start.Z+w.Height/2), nil
}

func roofSolid(k kernel.Kernel, model host.Model, r host.Roof) (kernel.Solid, error) {
	t := r.Thickness
	if t <= 0 {
		t = MinRoofThickness
	}
	switch {
	case len(r.Edges) > 0:
		lvl, ok := model.Level(r.Level)
		if !ok {
			return nil, fmt.Errorf("roof %s level %s: %w", r.ID, r.Level, host.ErrNotFound)
		}
		return hipSolid(k, r.Edges, lvl.Elevation, t)
	case len(r.Profile) > 0:
		return gableSolid(k, r, t)
	default:
		return nil, fmt.Errorf("roof %s has neither edges nor profile", r.ID)
	}
}

// gableSolid extrudes the profile curve, thickened upward, between the
// extrusion extents along the plane normal.
func gableSolid(k kernel.Kernel, r host.Roof, thickness float64) (kernel.Solid, error) {
	if r.ExtrusionEnd <= r.ExtrusionStart {
		return nil, fmt.Errorf("roof %s extrusion %g..%g is empty", r.ID, r.ExtrusionStart, r.ExtrusionEnd)
	}
	n := r.Plane.Normal.XY().Unit()
	u := layout.Vec3{X: -n.Y, Y: n.X}
	origin := r.Plane.Origin

	pts := make([]layout.Vec3, 0, len(r.Profile)+1)
	pts = append(pts, r.Profile[0].Start)
	for _, s := range r.Profile {
		pts = append(pts, s.End)
	}

	section := make([][2]float64, 0, 2*len(pts))
	for _, p := range pts {
		section = append(section, [2]float64{p.Sub(origin).XY().Dot(u), p.Z})
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		section = append(section, [2]float64{p.Sub(origin).XY().Dot(u), p.Z + thickness})
	}
	return sweep(k, section, origin, u, r.ExtrusionStart, r.ExtrusionEnd), nil
}

// hipSolid intersects two perpendicular gable prisms spanning the
// bounding rectangle of the edges. Each prism takes its two slopes from
// the edges running along it; a prism whose edges are both flat is left
// out, and a roof with no sloped edge is a flat slab.
func hipSolid(k kernel.Kernel, edges []layout.RoofEdge, base, thickness float64) (kernel.Solid, error) {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, e := range edges {
		for _, p := range []layout.Vec3{e.Start, e.End} {
			x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
			y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
		}
	}
	if !(x1 > x0 && y1 > y0) {
		return nil, fmt.Errorf("roof edges enclose no area")
	}

	// Edges running along X set the slopes across Y, and vice versa.
	var sy0, sy1, sx0, sx1 float64
	cx, cy := (x0+x1)/2, (y0+y1)/2
	for _, e := range edges {
		d := e.End.Sub(e.Start)
		m := e.Start.Mid(e.End)
		rise := math.Tan(e.Slope)
		if math.Abs(d.X) >= math.Abs(d.Y) {
			if m.Y < cy {
				sy0 = rise
			} else {
				sy1 = rise
			}
		} else {
			if m.X < cx {
				sx0 = rise
			} else {
				sx1 = rise
			}
		}
	}

	var solid kernel.Solid
	if sec, ok := gableSection(y0, y1, sy0, sy1, base); ok {
		solid = sweep(k, sec, layout.Vec3{}, layout.Vec3{Y: 1}, x0, x1)
	}
	if sec, ok := gableSection(x0, x1, sx0, sx1, base); ok {
		across := sweep(k, sec, layout.Vec3{}, layout.Vec3{X: 1}, -y1, -y0)
		if solid == nil {
			solid = across
		} else {
			solid = k.Intersection(solid, across)
		}
	}
	if solid == nil {
		slab := k.Box(x1-x0, y1-y0, thickness)
		return k.Translate(slab, cx, cy, base+thickness/2), nil
	}
	return solid, nil
}

// gableSection returns the triangle over [a0, a1] whose sides rise at r0
// from a0 and r1 from a1, sitting on base. It reports false when both
// sides are flat.
func gableSection(a0, a1, r0, r1, base float64) ([][2]float64, bool) {
	span := a1 - a0
	switch {
	case r0 <= 0 && r1 <= 0:
		return nil, false
	case r0 <= 0:
		return [][2]float64{{a0, base}, {a1, base}, {a0, base + r1*span}}, true
	case r1 <= 0:
		return [][2]float64{{a0, base}, {a1, base}, {a1, base + r0*span}}, true
	}
	ridge := (r0*a0 + r1*a1) / (r0 + r1)
	h := r0 * r1 * span / (r0 + r1)
	return [][2]float64{{a0, base}, {a1, base}, {ridge, base + h}}, true
}

// sweep extrudes a section drawn in the vertical plane through origin
// spanned by u and +Z. The section's first coordinate runs along u and its
// second is the absolute elevation. The result spans start..end along
// n = (u.Y, -u.X), measured from origin.
func sweep(k kernel.Kernel, section [][2]float64, origin, u layout.Vec3, start, end float64) kernel.Solid {
	s := k.Extrude(section, end-start)
	s = k.Translate(s, 0, 0, start)
	s = k.Rotate(s, 90, 0, degrees(math.Atan2(u.Y, u.X)))
	return k.Translate(s, origin.X, origin.Y, 0)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
