package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/envelope/pkg/host"
	"github.com/chazu/envelope/pkg/plan"
)

// run executes the CLI in an empty working directory and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const twoBuildings = `
(building "house" :roof (footprint-roof))
(building "shed" :width 4000 :depth 3000 :openings (list) :roof (extrusion-roof))
`

func TestFootprintCommand(t *testing.T) {
	out, err := run(t, "footprint", "--width", "3048", "--depth", "1524")
	if err != nil {
		t.Fatalf("footprint: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 5 points and an area, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "p0 (-5.0000, -2.5000") {
		t.Errorf("first point = %q", lines[0])
	}
	if lines[5] != "area 50.0000" {
		t.Errorf("area line = %q", lines[5])
	}
}

func TestFootprintRejectsZeroSize(t *testing.T) {
	if _, err := run(t, "footprint", "--width", "0"); err == nil {
		t.Fatal("expected an error for zero width")
	}
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	_, err := run(t, "--log-level", "verbose", "footprint")
	if err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error %q does not mention log.level", err)
	}
	if _, err := run(t, "--log-level", "DEBUG", "footprint"); err != nil {
		t.Errorf("footprint with --log-level DEBUG: %v", err)
	}
}

func TestPlanCommandRoundTrips(t *testing.T) {
	out, err := run(t, "plan", "--roof", "gable")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	p, err := plan.LoadYAML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if p.Roof.Strategy() == nil || p.Roof.Strategy().Kind().String() != "extrusion" {
		t.Errorf("roof = %+v", p.Roof)
	}

	// The printed plan builds.
	path := writeScript(t, "house.yaml", out)
	summary, err := run(t, "build", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(summary, "house: 4 walls, 4 openings, roof extrusion") {
		t.Errorf("summary = %q", summary)
	}
}

func TestBuildCommand(t *testing.T) {
	path := writeScript(t, "site.lisp", twoBuildings)
	out, err := run(t, "build", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"house: 4 walls, 4 openings, roof footprint", "shed: 4 walls, 0 openings, roof extrusion"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildCommandJSON(t *testing.T) {
	path := writeScript(t, "site.lisp", twoBuildings)
	out, err := run(t, "build", "--json", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var m host.Model
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not a model: %v", err)
	}
	if len(m.Walls) != 8 || len(m.Roofs) != 2 || len(m.Openings) != 4 {
		t.Errorf("model has %d walls, %d roofs, %d openings", len(m.Walls), len(m.Roofs), len(m.Openings))
	}
}

func TestBuildCommandErrors(t *testing.T) {
	tests := []struct {
		name, file, body, want string
	}{
		{"syntax", "bad.lisp", `(building "a"`, "bad.lisp"},
		{"validation", "bad.lisp", `(building "a" :width 0)`, "width"},
		{"missing level", "bad.lisp", `(building "a" :top-level "Roof")`, `building "a"`},
		{"yaml unknown field", "bad.yaml", "colour: red\n", "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.file, tt.body)
			_, err := run(t, "build", path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
	if _, err := run(t, "build", filepath.Join(t.TempDir(), "missing.lisp")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExportCommand(t *testing.T) {
	script := writeScript(t, "site.lisp", twoBuildings)

	out, err := run(t, "export", "--title", "Site", script)
	if err != nil {
		t.Fatalf("export svg: %v", err)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "Site") {
		t.Errorf("stdout is not an SVG plan:\n%.200s", out)
	}

	dir := t.TempDir()
	for _, name := range []string{"plan.svg", "plan.png", "plan.dxf"} {
		target := filepath.Join(dir, name)
		if _, err := run(t, "export", "-o", target, script); err != nil {
			t.Fatalf("export %s: %v", name, err)
		}
		if info, err := os.Stat(target); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if _, err := run(t, "export", "-f", "obj", script); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := run(t, "export", "-f", "png", script); err == nil {
		t.Error("expected png without --out to fail")
	}
}

func TestMeshCommand(t *testing.T) {
	path := writeScript(t, "shed.lisp", `(building "shed" :width 4000 :depth 3000 :openings (list) :roof (extrusion-roof))`)
	out, err := run(t, "mesh", "--cells", "64", path)
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 5 parts and a total, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[4], "roof/0") || !strings.HasPrefix(lines[5], "total") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
