package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/envelope/pkg/builder"
	"github.com/chazu/envelope/pkg/engine"
	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/host/memhost"
	"github.com/chazu/envelope/pkg/plan"
	"github.com/chazu/envelope/pkg/units"
)

// loadPlans reads plans from a YAML plan (.yaml, .yml) or a building
// script (anything else).
func (c *cli) loadPlans(path string) ([]plan.Plan, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		p, err := plan.LoadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := plan.Validate(p).Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []plan.Plan{p}, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	eng := engine.NewEngine(engine.WithTimeout(c.cfg.Engine.Timeout))
	plans, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = e
		}
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	for _, w := range engine.Warnings(plans) {
		c.logger.Warn("plan warning", "building", w.Building, "message", w.Message)
	}
	return plans, nil
}

func (c *cli) newDocument() *memhost.Document {
	return memhost.NewDefault(
		memhost.WithWallThickness(units.Length(c.cfg.Document.WallThickness)),
		memhost.WithUnconnectedHeight(units.Length(c.cfg.Document.UnconnectedHeight)),
		memhost.WithLogger(c.logger),
	)
}

// buildAll builds every plan into one fresh document. The first failure
// stops the run; buildings already committed stay in the document.
func (c *cli) buildAll(ctx context.Context, plans []plan.Plan) (host.Model, []*builder.Result, error) {
	doc := c.newDocument()
	b := builder.New(doc, builder.WithLogger(c.logger))
	var results []*builder.Result
	for _, p := range plans {
		res, err := b.Build(ctx, p)
		if err != nil {
			c.logger.Error(builder.FailureMessage(err), "building", p.Name)
			return host.Model{}, results, fmt.Errorf("building %q: %w", p.Name, err)
		}
		results = append(results, res)
	}
	return doc.Snapshot(), results, nil
}
