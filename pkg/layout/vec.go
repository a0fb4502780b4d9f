package layout

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in internal units. The zero Z is used for
// plan-view points.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mid returns the midpoint of v and o.
func (v Vec3) Mid(o Vec3) Vec3 {
	return v.Add(o).Scale(0.5)
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// XY drops the Z component.
func (v Vec3) XY() Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// Segment is a straight line between two points, e.g. a wall axis.
type Segment struct {
	Start Vec3 `json:"start"`
	End   Vec3 `json:"end"`
}

// Mid returns the midpoint of the segment.
func (s Segment) Mid() Vec3 {
	return s.Start.Mid(s.End)
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.End.Sub(s.Start).Len()
}

// Dir returns the unit direction from Start to End.
func (s Segment) Dir() Vec3 {
	return s.End.Sub(s.Start).Unit()
}

// Translate moves both endpoints by d.
func (s Segment) Translate(d Vec3) Segment {
	return Segment{Start: s.Start.Add(d), End: s.End.Add(d)}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
