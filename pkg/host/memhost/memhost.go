// Package memhost is an in-memory host.Document. It keeps a level list, a
// family-type catalogue and the building elements created through it, and
// applies changes atomically: mutations go to a working copy that Commit
// publishes and Rollback drops.
package memhost

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/units"
)

// Defaults used by New when no option overrides them.
const (
	DefaultWallThickness     units.Length = 200
	DefaultUnconnectedHeight units.Length = 3000
)

// tolerance for point-on-wall and loop-closure checks, in internal units.
const tolerance = 1e-6

type state struct {
	levels   []host.Level
	types    []host.Type
	walls    []host.Wall
	openings []host.Opening
	roofs    []host.Roof
}

func (s *state) clone() *state {
	c := &state{
		levels:   slices.Clone(s.levels),
		types:    slices.Clone(s.types),
		walls:    slices.Clone(s.walls),
		openings: slices.Clone(s.openings),
		roofs:    make([]host.Roof, len(s.roofs)),
	}
	for i, r := range s.roofs {
		r.Edges = slices.Clone(r.Edges)
		r.Profile = slices.Clone(r.Profile)
		c.roofs[i] = r
	}
	return c
}

// Document is an in-memory host.Document. It is safe for concurrent use.
type Document struct {
	mu        sync.Mutex
	committed *state
	working   *state // non-nil while a transaction is open
	txName    string

	wallThickness     float64
	unconnectedHeight float64
	logger            *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithWallThickness sets the thickness of every wall the document creates.
func WithWallThickness(t units.Length) Option {
	return func(d *Document) { d.wallThickness = t.Internal() }
}

// WithUnconnectedHeight sets the height of walls without a top level.
func WithUnconnectedHeight(h units.Length) Option {
	return func(d *Document) { d.unconnectedHeight = h.Internal() }
}

// WithLogger sets the logger used for transaction events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		committed:         &state{},
		wallThickness:     DefaultWallThickness.Internal(),
		unconnectedHeight: DefaultUnconnectedHeight.Internal(),
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ host.Document = (*Document)(nil)

// AddLevel registers a level outside of any transaction. It is the
// document's setup API, not a building mutation.
func (d *Document) AddLevel(name string, elevation units.Length) host.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	l := host.Level{ID: newID(), Name: name, Elevation: elevation.Internal()}
	d.committed.levels = append(d.committed.levels, l)
	return l
}

// TypeSpec describes a catalogue entry for AddType. Sizes are millimetres.
type TypeSpec struct {
	Category  host.Category
	Name      string
	Family    string
	Width     units.Length
	Height    units.Length
	Thickness units.Length
	Active    bool
}

// AddType registers a family type outside of any transaction.
func (d *Document) AddType(spec TypeSpec) host.Type {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := host.Type{
		ID:        newID(),
		Category:  spec.Category,
		Name:      spec.Name,
		Family:    spec.Family,
		Width:     spec.Width.Internal(),
		Height:    spec.Height.Internal(),
		Thickness: spec.Thickness.Internal(),
		Active:    spec.Active,
	}
	d.committed.types = append(d.committed.types, t)
	return t
}

func newID() host.ID {
	return host.ID(uuid.NewString())
}

// current returns the state reads should see: the working copy inside a
// transaction, the committed state otherwise. Callers hold d.mu.
func (d *Document) current() *state {
	if d.working != nil {
		return d.working
	}
	return d.committed
}

// mutable returns the working copy or fails when no transaction is open.
// Callers hold d.mu.
func (d *Document) mutable(op string) (*state, error) {
	if d.working == nil {
		return nil, fmt.Errorf("%s outside a transaction: %w", op, host.ErrHostOperationFailed)
	}
	return d.working, nil
}

// FindLevelByName implements host.Lookup. The first level with the name
// wins.
func (d *Document) FindLevelByName(name string) (host.Level, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := lo.Find(d.current().levels, func(l host.Level) bool { return l.Name == name })
	if !ok {
		return host.Level{}, fmt.Errorf("level %q: %w", name, host.ErrNotFound)
	}
	return l, nil
}

// FindFamilyType implements host.Lookup.
func (d *Document) FindFamilyType(category host.Category, typeName, familyName string) (host.Type, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := lo.Find(d.current().types, func(t host.Type) bool {
		return t.Category == category && t.Name == typeName && t.Family == familyName
	})
	if !ok {
		return host.Type{}, fmt.Errorf("%s type %q of family %q: %w", category, typeName, familyName, host.ErrNotFound)
	}
	return t, nil
}

// Activate implements host.Document.
func (d *Document) Activate(t host.Type) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.mutable("activate")
	if err != nil {
		return err
	}
	i := slices.IndexFunc(s.types, func(x host.Type) bool { return x.ID == t.ID })
	if i < 0 {
		return fmt.Errorf("activate %s: %w", t, host.ErrNotFound)
	}
	s.types[i].Active = true
	return nil
}

func (s *state) level(id host.ID) (host.Level, error) {
	l, ok := lo.Find(s.levels, func(l host.Level) bool { return l.ID == id })
	if !ok {
		return host.Level{}, fmt.Errorf("level %s: %w", id, host.ErrNotFound)
	}
	return l, nil
}

func (s *state) typ(id host.ID) (host.Type, error) {
	t, ok := lo.Find(s.types, func(t host.Type) bool { return t.ID == id })
	if !ok {
		return host.Type{}, fmt.Errorf("type %s: %w", id, host.ErrNotFound)
	}
	return t, nil
}

func (s *state) wallIndex(id host.ID) (int, error) {
	i := slices.IndexFunc(s.walls, func(w host.Wall) bool { return w.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("wall %s: %w", id, host.ErrNotFound)
	}
	return i, nil
}

func (s *state) roofIndex(id host.ID) (int, error) {
	i := slices.IndexFunc(s.roofs, func(r host.Roof) bool { return r.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("roof %s: %w", id, host.ErrNotFound)
	}
	return i, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
