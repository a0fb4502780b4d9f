package layout

// OpeningPosition returns the insertion point of a door or window hosted
// by the given wall: the wall midpoint shifted offset along the wall
// direction, at elevation sill above the wall base.
func OpeningPosition(wall Segment, offset, sill float64) Vec3 {
	p := wall.Mid().Add(wall.Dir().Scale(offset))
	p.Z = wall.Start.Z + sill
	return p
}
