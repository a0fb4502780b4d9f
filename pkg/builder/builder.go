// Package builder writes a plan.Plan into a host.Document. It resolves
// every named level and family type first, then performs all mutations
// inside one transaction: four walls around the footprint, the doors and
// windows, and the roof. Any failure rolls the transaction back, so the
// document either gains the whole building or nothing.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/plan"
	"github.com/chazu/envelope/pkg/units"
)

// Result describes what a successful Build created.
type Result struct {
	Name      string
	Footprint layout.Footprint
	Walls     [plan.WallCount]host.ID
	Openings  []host.ID
	Roof      host.ID              // empty when the plan has no roof
	Gable     *layout.GableProfile // set for extrusion roofs
	Warnings  []plan.ValidationError
}

// Builder sequences host calls for one building at a time.
type Builder struct {
	doc    host.Document
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build progress.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// New returns a Builder writing into doc.
func New(doc host.Document, opts ...Option) *Builder {
	b := &Builder{doc: doc, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build is shorthand for New(doc).Build(ctx, p).
func Build(ctx context.Context, doc host.Document, p plan.Plan) (*Result, error) {
	return New(doc).Build(ctx, p)
}

// resolved holds everything looked up before the transaction starts.
type resolved struct {
	base, top host.Level
	openings  []host.Type
	roof      host.Type
}

// Build validates p, resolves its levels and types, and creates the
// building inside a single transaction.
func (b *Builder) Build(ctx context.Context, p plan.Plan) (*Result, error) {
	log := b.logger.With("building", p.Name)

	vr := plan.Validate(p)
	for _, w := range vr.Warnings {
		log.Warn("plan warning", "field", w.Field, "message", w.Message)
	}
	if err := vr.Err(); err != nil {
		return nil, err
	}

	fp, err := layout.GenerateFootprint(p.Width, p.Depth)
	if err != nil {
		return nil, err
	}

	res, err := b.resolve(p)
	if err != nil {
		return nil, err
	}
	if err := plan.CheckSizes(p, res.sizes()).Err(); err != nil {
		return nil, fmt.Errorf("opening types: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := b.doc.Begin(fmt.Sprintf("Build %s", p.Name))
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("rollback failed", "error", rbErr)
			} else {
				log.Info("build rolled back")
			}
		}
	}()

	out := &Result{Name: p.Name, Footprint: fp, Warnings: vr.Warnings}

	steps := []struct {
		name string
		run  func() error
	}{
		{"activate types", func() error { return b.activate(res) }},
		{"walls", func() error { return b.walls(p, fp, res, out) }},
		{"openings", func() error { return b.openings(p, res, out) }},
		{"roof", func() error { return b.roof(p, res, out) }},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		log.Debug("build step done", "step", s.name)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	committed = true
	log.Info("building created", "walls", len(out.Walls), "openings", len(out.Openings), "roof", p.Roof.Kind)
	return out, nil
}

// sizes returns the catalogue size of every resolved opening type, which
// is the size the document will build.
func (r resolved) sizes() []plan.Size {
	sizes := make([]plan.Size, len(r.openings))
	for i, t := range r.openings {
		sizes[i] = plan.Size{Width: units.FromInternal(t.Width), Height: units.FromInternal(t.Height)}
	}
	return sizes
}

func categoryOf(k plan.OpeningKind) host.Category {
	if k == plan.OpeningDoor {
		return host.CategoryDoors
	}
	return host.CategoryWindows
}

func (b *Builder) resolve(p plan.Plan) (resolved, error) {
	var r resolved
	var err error
	if r.base, err = b.doc.FindLevelByName(p.BaseLevel); err != nil {
		return r, fmt.Errorf("base level: %w", err)
	}
	if r.top, err = b.doc.FindLevelByName(p.TopLevel); err != nil {
		return r, fmt.Errorf("top level: %w", err)
	}
	for i, o := range p.Openings {
		t, err := b.doc.FindFamilyType(categoryOf(o.Kind), o.Type.Name, o.Type.Family)
		if err != nil {
			return r, fmt.Errorf("openings[%d]: %w", i, err)
		}
		r.openings = append(r.openings, t)
	}
	if p.Roof.Kind != layout.RoofNone {
		if r.roof, err = b.doc.FindFamilyType(host.CategoryRoofs, p.Roof.Type.Name, p.Roof.Type.Family); err != nil {
			return r, fmt.Errorf("roof: %w", err)
		}
	}
	return r, nil
}

func (b *Builder) activate(r resolved) error {
	types := r.openings
	if r.roof.ID != "" {
		types = append(types[:len(types):len(types)], r.roof)
	}
	for _, t := range lo.UniqBy(types, func(t host.Type) host.ID { return t.ID }) {
		if t.Active {
			continue
		}
		if err := b.doc.Activate(t); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}
	return nil
}

func (b *Builder) walls(p plan.Plan, fp layout.Footprint, r resolved, out *Result) error {
	for i, seg := range fp.Segments() {
		id, err := b.doc.CreateWallBetween(seg.Start, seg.End, r.base, p.Structural)
		if err != nil {
			return fmt.Errorf("wall %d: %w", i, err)
		}
		if err := b.doc.SetWallTopLevel(id, r.top); err != nil {
			return fmt.Errorf("wall %d top level: %w", i, err)
		}
		out.Walls[i] = id
	}
	return nil
}

// axis reads a wall's live location line back from the document.
func (b *Builder) axis(id host.ID) (layout.Segment, error) {
	start, end, err := b.doc.WallEndpoints(id)
	if err != nil {
		return layout.Segment{}, err
	}
	return layout.Segment{Start: start, End: end}, nil
}

func (b *Builder) openings(p plan.Plan, r resolved, out *Result) error {
	for i, o := range p.Openings {
		wall := out.Walls[o.Wall]
		seg, err := b.axis(wall)
		if err != nil {
			return fmt.Errorf("openings[%d]: %w", i, err)
		}
		pos := layout.OpeningPosition(seg, o.Offset.Internal(), o.Sill.Internal())
		id, err := b.doc.CreateOpening(pos, r.openings[i], wall, r.base)
		if err != nil {
			return fmt.Errorf("openings[%d] (%s in wall %d): %w", i, o.Kind, o.Wall, err)
		}
		out.Openings = append(out.Openings, id)
	}
	return nil
}

func (b *Builder) roof(p plan.Plan, r resolved, out *Result) error {
	switch s := p.Roof.Strategy().(type) {
	case nil:
		return nil
	case layout.FootprintRoof:
		return b.footprintRoof(s, r, out)
	case layout.ExtrusionRoof:
		return b.extrusionRoof(p, s, r, out)
	default:
		return fmt.Errorf("roof strategy %T: %w", s, layout.ErrInvalidArgument)
	}
}

func (b *Builder) footprintRoof(s layout.FootprintRoof, r resolved, out *Result) error {
	var axes [plan.WallCount]layout.Segment
	for i, id := range out.Walls {
		seg, err := b.axis(id)
		if err != nil {
			return err
		}
		axes[i] = seg
	}
	thickness, err := b.doc.WallThickness(out.Walls[0])
	if err != nil {
		return err
	}
	edges, err := layout.HipBoundary(axes, thickness/2, s.Slope)
	if err != nil {
		return err
	}
	boundary := lo.Map(edges[:], func(e layout.RoofEdge, _ int) layout.Segment { return e.Segment })
	id, err := b.doc.CreateFootprintRoof(boundary, r.top, r.roof)
	if err != nil {
		return err
	}
	for i, e := range edges {
		if err := b.doc.SetEdgeSlope(id, i, e.Slope); err != nil {
			return fmt.Errorf("edge %d slope: %w", i, err)
		}
	}
	out.Roof = id
	return nil
}

// ReferenceWall is the wall an extrusion roof profile is drawn against.
// The ridge runs perpendicular to it, along the building width.
const ReferenceWall = 1

func (b *Builder) extrusionRoof(p plan.Plan, s layout.ExtrusionRoof, r resolved, out *Result) error {
	ref := out.Walls[ReferenceWall]
	seg, err := b.axis(ref)
	if err != nil {
		return err
	}
	thickness, err := b.doc.WallThickness(ref)
	if err != nil {
		return err
	}
	height, err := b.doc.WallHeight(ref)
	if err != nil {
		return err
	}

	// Draw the profile through the footprint centre so the symmetric
	// extrusion covers the whole building.
	centre := out.Footprint.Ring().Bound().Center()
	mid := seg.Mid()
	seg = seg.Translate(layout.Vec3{X: centre[0] - mid.X, Y: centre[1] - mid.Y})

	g, err := layout.GenerateGableExtrusionProfile(layout.GableParams{
		WallHalfWidth: thickness / 2,
		WallHeight:    height,
		RidgeRise:     s.RidgeRise,
		OverallWidth:  p.Width,
		EaveOverhang:  s.EaveOverhang,
		Reference:     seg,
	})
	if err != nil {
		return err
	}
	id, err := b.doc.CreateExtrusionRoof(g.Curve(), g.Plane, r.top, r.roof, g.ExtrusionStart, g.ExtrusionEnd)
	if err != nil {
		return err
	}
	out.Roof = id
	out.Gable = &g
	return nil
}

// FailureMessage renders err as the single message shown to the user when
// a build fails.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Build cancelled: %v", err)
	case errors.Is(err, host.ErrNotFound):
		return fmt.Sprintf("Build failed, missing from the document: %v", err)
	case errors.Is(err, layout.ErrInvalidArgument):
		return fmt.Sprintf("Build failed, invalid plan: %v", err)
	case errors.Is(err, host.ErrHostOperationFailed):
		return fmt.Sprintf("Build failed, the document rejected a change: %v", err)
	default:
		return fmt.Sprintf("Build failed: %v", err)
	}
}
