package host

import "github.com/chazu/envelope/pkg/layout"

// Lookup resolves named elements. Misses return an error wrapping
// ErrNotFound.
type Lookup interface {
	FindLevelByName(name string) (Level, error)
	FindFamilyType(category Category, typeName, familyName string) (Type, error)
}

// WallReader reads back the live geometry of a placed wall.
type WallReader interface {
	WallEndpoints(wall ID) (start, end layout.Vec3, err error)
	WallThickness(wall ID) (float64, error)
	WallHeight(wall ID) (float64, error)
}

// Document is a modeling document that a building is written into. All
// mutating calls must happen inside a transaction opened with Begin; a
// mutation outside one fails with ErrHostOperationFailed.
type Document interface {
	Lookup
	WallReader

	// Activate prepares a family type for placement. Activating an active
	// type is a no-op.
	Activate(t Type) error

	CreateWallBetween(start, end layout.Vec3, base Level, structural bool) (ID, error)
	SetWallTopLevel(wall ID, top Level) error

	CreateOpening(position layout.Vec3, t Type, wall ID, level Level) (ID, error)

	// CreateFootprintRoof creates a roof over a closed boundary. Edges start
	// with no slope; SetEdgeSlope assigns one per edge.
	CreateFootprintRoof(boundary []layout.Segment, level Level, t Type) (ID, error)
	SetEdgeSlope(roof ID, edge int, slope float64) error

	// CreateExtrusionRoof extrudes an open profile curve drawn in plane
	// along the plane normal from start to end.
	CreateExtrusionRoof(profile []layout.Segment, plane layout.Plane, level Level, t Type, start, end float64) (ID, error)

	// Begin opens the single transaction of the document.
	Begin(name string) (Transaction, error)

	// Snapshot returns the committed contents of the document.
	Snapshot() Model
}

// Transaction is a unit of work on a Document. Commit publishes every
// change made since Begin; Rollback discards them. Rollback after Commit
// is a no-op, so callers can defer it.
type Transaction interface {
	Commit() error
	Rollback() error
}
