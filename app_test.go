package main

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/chazu/envelope/pkg/config"
)

// newTestApp returns an App that meshes coarsely so the end-to-end tests
// stay fast. Cells must stay well under the wall thickness or walls come
// out empty.
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Render.MeshCells = 120
	return NewAppWithConfig(cfg, slog.New(slog.DiscardHandler))
}

func failOnErrors(t *testing.T, result EvalResult) {
	t.Helper()
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d, building %q): %s", e.Line, e.Building, e.Message)
		}
		t.FailNow()
	}
}

// TestE2EHouseExample exercises the full pipeline: script → engine → plans
// → builder → document → tessellate → meshes. This is the same path that
// the Wails Evaluate binding takes, but without the Wails runtime.
func TestE2EHouseExample(t *testing.T) {
	app := newTestApp(t)

	source, err := os.ReadFile("examples/house.lisp")
	if err != nil {
		t.Fatalf("failed to read house.lisp: %v", err)
	}

	result := app.Evaluate(string(source))
	failOnErrors(t, result)

	// Two buildings, each with four walls and a roof.
	if len(result.Meshes) != 10 {
		t.Fatalf("expected 10 meshes, got %d", len(result.Meshes))
	}

	expectedParts := map[string]int{
		"wall/0": 0, "wall/7": 0, "roof/0": 0, "roof/1": 0,
	}
	for _, m := range result.Meshes {
		if _, ok := expectedParts[m.PartName]; ok {
			expectedParts[m.PartName]++
		}

		// Each mesh must have non-empty geometry.
		if len(m.Vertices) == 0 {
			t.Errorf("part %q: no vertices", m.PartName)
		}
		if len(m.Normals) == 0 {
			t.Errorf("part %q: no normals", m.PartName)
		}
		if len(m.Indices) == 0 {
			t.Errorf("part %q: no indices", m.PartName)
		}

		// Must have a color assigned.
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
	}
	for name, n := range expectedParts {
		if n != 1 {
			t.Errorf("part %q seen %d times, want 1", name, n)
		}
	}

	if !strings.Contains(result.PlanSVG, "<svg") {
		t.Error("expected a plan view")
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp(t)
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	if result.PlanSVG != "" {
		t.Error("expected no plan view for empty source")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp(t)
	result := app.Evaluate(`(building "test"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2EDefaultBuilding ensures a bare declaration renders the four walls
// of the default building.
func TestE2EDefaultBuilding(t *testing.T) {
	app := newTestApp(t)
	result := app.Evaluate(`(building "house")`)
	failOnErrors(t, result)

	if len(result.Meshes) != 4 {
		t.Fatalf("expected 4 meshes, got %d", len(result.Meshes))
	}
	for i, m := range result.Meshes {
		if !strings.HasPrefix(m.PartName, "wall/") {
			t.Errorf("mesh %d part name = %q, want a wall", i, m.PartName)
		}
	}
}

func TestE2ERoofKinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"footprint", `(building "hip" :roof (footprint-roof))`},
		{"extrusion", `(building "gable" :roof (extrusion-roof))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestApp(t).Evaluate(tt.source)
			failOnErrors(t, result)
			if len(result.Meshes) != 5 {
				t.Fatalf("expected 5 meshes, got %d", len(result.Meshes))
			}
			if last := result.Meshes[4]; last.PartName != "roof/0" || len(last.Indices) == 0 {
				t.Errorf("roof mesh = %q with %d indices", last.PartName, len(last.Indices))
			}
		})
	}
}
