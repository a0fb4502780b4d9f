package memhost

import (
	"fmt"
	"math"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/layout"
)

// CreateWallBetween implements host.Document. The wall axis is placed at
// the base level elevation.
func (d *Document) CreateWallBetween(start, end layout.Vec3, base host.Level, structural bool) (host.ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("create wall")
	if err != nil {
		return "", err
	}
	lvl, err := s.level(base.ID)
	if err != nil {
		return "", err
	}
	if !start.IsFinite() || !end.IsFinite() {
		return "", fmt.Errorf("create wall %v-%v: non-finite endpoint: %w", start, end, host.ErrHostOperationFailed)
	}
	axis := layout.Segment{Start: start, End: end}
	axis.Start.Z = lvl.Elevation
	axis.End.Z = lvl.Elevation
	if axis.Len() < tolerance {
		return "", fmt.Errorf("create wall %v-%v: zero length: %w", start, end, host.ErrHostOperationFailed)
	}
	w := host.Wall{
		ID:         newID(),
		Axis:       axis,
		BaseLevel:  lvl.ID,
		Thickness:  d.wallThickness,
		Height:     d.unconnectedHeight,
		Structural: structural,
	}
	s.walls = append(s.walls, w)
	return w.ID, nil
}

// SetWallTopLevel implements host.Document.
func (d *Document) SetWallTopLevel(wall host.ID, top host.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("set wall top level")
	if err != nil {
		return err
	}
	i, err := s.wallIndex(wall)
	if err != nil {
		return err
	}
	topLvl, err := s.level(top.ID)
	if err != nil {
		return err
	}
	baseLvl, err := s.level(s.walls[i].BaseLevel)
	if err != nil {
		return err
	}
	h := topLvl.Elevation - baseLvl.Elevation
	if h <= 0 {
		return fmt.Errorf("top level %q is not above base level %q: %w", topLvl.Name, baseLvl.Name, host.ErrHostOperationFailed)
	}
	s.walls[i].TopLevel = topLvl.ID
	s.walls[i].Height = h
	return nil
}

func (d *Document) wall(id host.ID) (host.Wall, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.current()
	i, err := s.wallIndex(id)
	if err != nil {
		return host.Wall{}, err
	}
	return s.walls[i], nil
}

// WallEndpoints implements host.WallReader.
func (d *Document) WallEndpoints(id host.ID) (layout.Vec3, layout.Vec3, error) {
	w, err := d.wall(id)
	if err != nil {
		return layout.Vec3{}, layout.Vec3{}, err
	}
	return w.Axis.Start, w.Axis.End, nil
}

// WallThickness implements host.WallReader.
func (d *Document) WallThickness(id host.ID) (float64, error) {
	w, err := d.wall(id)
	if err != nil {
		return 0, err
	}
	return w.Thickness, nil
}

// WallHeight implements host.WallReader.
func (d *Document) WallHeight(id host.ID) (float64, error) {
	w, err := d.wall(id)
	if err != nil {
		return 0, err
	}
	return w.Height, nil
}

// CreateOpening implements host.Document. The type must be an active door
// or window type and the position must lie on the wall axis in plan, with
// the opening inside the wall.
func (d *Document) CreateOpening(position layout.Vec3, t host.Type, wallID host.ID, level host.Level) (host.ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("create opening")
	if err != nil {
		return "", err
	}
	typ, err := s.typ(t.ID)
	if err != nil {
		return "", err
	}
	if typ.Category != host.CategoryDoors && typ.Category != host.CategoryWindows {
		return "", fmt.Errorf("create opening with %s: %w", typ, host.ErrHostOperationFailed)
	}
	if !typ.Active {
		return "", fmt.Errorf("create opening with inactive %s: %w", typ, host.ErrHostOperationFailed)
	}
	lvl, err := s.level(level.ID)
	if err != nil {
		return "", err
	}
	i, err := s.wallIndex(wallID)
	if err != nil {
		return "", err
	}
	w := s.walls[i]
	if !position.IsFinite() {
		return "", fmt.Errorf("create opening at %v: %w", position, host.ErrHostOperationFailed)
	}

	// Project onto the wall axis in plan.
	dir := w.Axis.Dir().XY()
	rel := position.XY().Sub(w.Axis.Start.XY())
	along := rel.Dot(dir)
	across := rel.Sub(dir.Scale(along)).Len()
	if across > tolerance {
		return "", fmt.Errorf("opening at %v is %g off the wall axis: %w", position, across, host.ErrHostOperationFailed)
	}
	half := typ.Width / 2
	if along-half < -tolerance || along+half > w.Axis.Len()+tolerance {
		return "", fmt.Errorf("%s at %v runs past the wall ends: %w", typ, position, host.ErrHostOperationFailed)
	}
	sill := position.Z - w.Axis.Start.Z
	if sill < -tolerance || sill+typ.Height > w.Height+tolerance {
		return "", fmt.Errorf("%s at %v does not fit the wall height %g: %w", typ, position, w.Height, host.ErrHostOperationFailed)
	}

	o := host.Opening{
		ID:       newID(),
		Category: typ.Category,
		Type:     typ.ID,
		Wall:     w.ID,
		Level:    lvl.ID,
		Position: position,
		Width:    typ.Width,
		Height:   typ.Height,
	}
	s.openings = append(s.openings, o)
	return o.ID, nil
}

func (s *state) roofType(t host.Type) (host.Type, error) {
	typ, err := s.typ(t.ID)
	if err != nil {
		return host.Type{}, err
	}
	if typ.Category != host.CategoryRoofs {
		return host.Type{}, fmt.Errorf("create roof with %s: %w", typ, host.ErrHostOperationFailed)
	}
	return typ, nil
}

// CreateFootprintRoof implements host.Document. The boundary must be a
// closed loop of at least three edges.
func (d *Document) CreateFootprintRoof(boundary []layout.Segment, level host.Level, t host.Type) (host.ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("create footprint roof")
	if err != nil {
		return "", err
	}
	typ, err := s.roofType(t)
	if err != nil {
		return "", err
	}
	lvl, err := s.level(level.ID)
	if err != nil {
		return "", err
	}
	if len(boundary) < 3 {
		return "", fmt.Errorf("footprint roof needs at least 3 edges, got %d: %w", len(boundary), host.ErrHostOperationFailed)
	}
	if err := checkChain(boundary); err != nil {
		return "", err
	}
	if gap := boundary[len(boundary)-1].End.Sub(boundary[0].Start).Len(); gap > tolerance {
		return "", fmt.Errorf("footprint roof boundary is open by %g: %w", gap, host.ErrHostOperationFailed)
	}

	edges := make([]layout.RoofEdge, len(boundary))
	for i, b := range boundary {
		b.Start.Z, b.End.Z = lvl.Elevation, lvl.Elevation
		edges[i] = layout.RoofEdge{Segment: b}
	}
	r := host.Roof{
		ID:        newID(),
		Kind:      layout.RoofFootprint,
		Type:      typ.ID,
		Level:     lvl.ID,
		Thickness: typ.Thickness,
		Edges:     edges,
	}
	s.roofs = append(s.roofs, r)
	return r.ID, nil
}

// SetEdgeSlope implements host.Document.
func (d *Document) SetEdgeSlope(roof host.ID, edge int, slope float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("set edge slope")
	if err != nil {
		return err
	}
	i, err := s.roofIndex(roof)
	if err != nil {
		return err
	}
	r := &s.roofs[i]
	if r.Kind != layout.RoofFootprint {
		return fmt.Errorf("set slope on %s roof: %w", r.Kind, host.ErrHostOperationFailed)
	}
	if edge < 0 || edge >= len(r.Edges) {
		return fmt.Errorf("roof edge %d of %d: %w", edge, len(r.Edges), host.ErrHostOperationFailed)
	}
	if !finite(slope) || slope < 0 || slope >= math.Pi/2 {
		return fmt.Errorf("slope %g: %w", slope, host.ErrHostOperationFailed)
	}
	r.Edges[edge].Slope = slope
	return nil
}

// CreateExtrusionRoof implements host.Document. The profile must be a
// connected open curve lying in the plane, and start must precede end.
func (d *Document) CreateExtrusionRoof(profile []layout.Segment, plane layout.Plane, level host.Level, t host.Type, start, end float64) (host.ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("create extrusion roof")
	if err != nil {
		return "", err
	}
	typ, err := s.roofType(t)
	if err != nil {
		return "", err
	}
	lvl, err := s.level(level.ID)
	if err != nil {
		return "", err
	}
	if len(profile) == 0 {
		return "", fmt.Errorf("extrusion roof has no profile: %w", host.ErrHostOperationFailed)
	}
	if !finite(start) || !finite(end) || start >= end {
		return "", fmt.Errorf("extrusion %g to %g: %w", start, end, host.ErrHostOperationFailed)
	}
	n := plane.Normal.Unit()
	if n.Len() == 0 {
		return "", fmt.Errorf("reference plane has no normal: %w", host.ErrHostOperationFailed)
	}
	if err := checkChain(profile); err != nil {
		return "", err
	}
	for _, seg := range profile {
		for _, p := range []layout.Vec3{seg.Start, seg.End} {
			if dist := math.Abs(p.Sub(plane.Origin).Dot(n)); dist > tolerance {
				return "", fmt.Errorf("profile point %v is %g off the reference plane: %w", p, dist, host.ErrHostOperationFailed)
			}
		}
	}
	r := host.Roof{
		ID:             newID(),
		Kind:           layout.RoofExtrusion,
		Type:           typ.ID,
		Level:          lvl.ID,
		Thickness:      typ.Thickness,
		Profile:        append([]layout.Segment(nil), profile...),
		Plane:          layout.Plane{Origin: plane.Origin, Normal: n},
		ExtrusionStart: start,
		ExtrusionEnd:   end,
	}
	s.roofs = append(s.roofs, r)
	return r.ID, nil
}

// checkChain verifies that consecutive segments share endpoints and have
// length.
func checkChain(segs []layout.Segment) error {
	for i, seg := range segs {
		if !seg.Start.IsFinite() || !seg.End.IsFinite() || seg.Len() < tolerance {
			return fmt.Errorf("curve segment %d %v-%v is degenerate: %w", i, seg.Start, seg.End, host.ErrHostOperationFailed)
		}
		if i > 0 {
			if gap := seg.Start.Sub(segs[i-1].End).Len(); gap > tolerance {
				return fmt.Errorf("curve segments %d and %d do not meet (gap %g): %w", i-1, i, gap, host.ErrHostOperationFailed)
			}
		}
	}
	return nil
}
