package memhost

import (
	"fmt"
	"slices"

	"github.com/chazu/envelope/pkg/host"
)

// Begin implements host.Document. Only one transaction can be open at a
// time.
func (d *Document) Begin(name string) (host.Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.working != nil {
		return nil, fmt.Errorf("begin %q while %q is open: %w", name, d.txName, host.ErrHostOperationFailed)
	}
	d.working = d.committed.clone()
	d.txName = name
	d.logger.Debug("transaction started", "name", name)
	return &transaction{doc: d, name: name}, nil
}

type transaction struct {
	doc  *Document
	name string
	done bool
}

func (tx *transaction) Commit() error {
	d := tx.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	if tx.done {
		return fmt.Errorf("commit %q: transaction already finished: %w", tx.name, host.ErrHostOperationFailed)
	}
	d.committed = d.working
	d.working = nil
	d.txName = ""
	tx.done = true
	d.logger.Debug("transaction committed", "name", tx.name,
		"walls", len(d.committed.walls), "openings", len(d.committed.openings), "roofs", len(d.committed.roofs))
	return nil
}

func (tx *transaction) Rollback() error {
	d := tx.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	if tx.done {
		return nil
	}
	d.working = nil
	d.txName = ""
	tx.done = true
	d.logger.Debug("transaction rolled back", "name", tx.name)
	return nil
}

// Snapshot implements host.Document. It never exposes uncommitted changes.
func (d *Document) Snapshot() host.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.committed.clone()
	return host.Model{
		Levels:   c.levels,
		Types:    c.types,
		Walls:    c.walls,
		Openings: c.openings,
		Roofs:    c.roofs,
	}
}

// InTransaction reports whether a transaction is open.
func (d *Document) InTransaction() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.working != nil
}

// Levels returns the committed levels ordered by elevation.
func (d *Document) Levels() []host.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := slices.Clone(d.committed.levels)
	slices.SortStableFunc(out, func(a, b host.Level) int {
		switch {
		case a.Elevation < b.Elevation:
			return -1
		case a.Elevation > b.Elevation:
			return 1
		}
		return 0
	})
	return out
}
