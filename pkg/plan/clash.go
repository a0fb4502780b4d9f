package plan

import (
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/envelope/pkg/units"
)

// Size is the width and height of an opening.
type Size struct {
	Width, Height units.Length
}

func (s Size) known() bool {
	return s.Width > 0 && s.Height > 0
}

// NominalSizes returns the size encoded in each opening's type name, in
// plan order. Unknown sizes are zero.
func NominalSizes(p Plan) []Size {
	sizes := make([]Size, len(p.Openings))
	for i, o := range p.Openings {
		if w, h, ok := o.Size(); ok {
			sizes[i] = Size{Width: w, Height: h}
		}
	}
	return sizes
}

// Clash is a pair of openings whose rectangles overlap on the same wall.
type Clash struct {
	A, B int // indexes into Plan.Openings, A < B
}

// openingBox indexes one opening in wall-elevation space: the wall index,
// the distance along the wall from its midpoint, and the height above the
// wall base, all in millimetres.
type openingBox struct {
	index int
	rect  rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (b *openingBox) Bounds() rtreego.Rect {
	return b.rect
}

// Clashes returns every pair of openings that overlap, sized by their type
// names.
func Clashes(p Plan) []Clash {
	return ClashesSized(p, NominalSizes(p))
}

// ClashesSized returns every pair of openings that overlap when opening i
// has size sizes[i]. Openings with an unknown size or an out-of-range wall
// are ignored; Validate reports those separately.
func ClashesSized(p Plan, sizes []Size) []Clash {
	tree := rtreego.NewTree(3, 2, 8)
	var boxes []*openingBox

	for i, o := range p.Openings {
		if o.Wall < 0 || o.Wall >= WallCount || i >= len(sizes) || !sizes[i].known() {
			continue
		}
		w, h := sizes[i].Width, sizes[i].Height
		rect, err := rtreego.NewRect(
			rtreego.Point{float64(o.Wall), float64(o.Offset - w/2), float64(o.Sill)},
			[]float64{0.5, float64(w), float64(h)},
		)
		if err != nil {
			continue
		}
		b := &openingBox{index: i, rect: rect}
		boxes = append(boxes, b)
		tree.Insert(b)
	}

	var clashes []Clash
	for _, b := range boxes {
		for _, hit := range tree.SearchIntersect(b.rect) {
			other := hit.(*openingBox)
			if other.index > b.index {
				clashes = append(clashes, Clash{A: b.index, B: other.index})
			}
		}
	}
	return clashes
}

func clashFindings(p Plan, sizes []Size) []ValidationError {
	var errs []ValidationError
	for _, c := range ClashesSized(p, sizes) {
		a, b := p.Openings[c.A], p.Openings[c.B]
		errs = append(errs, ValidationError{
			Field:    fmt.Sprintf("openings[%d]", c.B),
			Message:  fmt.Sprintf("%s overlaps %s openings[%d] on wall %d", b.Kind, a.Kind, c.A, a.Wall),
			Severity: SeverityError,
		})
	}
	return errs
}
