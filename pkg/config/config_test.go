package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Document.WallThickness != 200 || cfg.Document.UnconnectedHeight != 3000 {
		t.Errorf("document = %+v", cfg.Document)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("engine.timeout = %v", cfg.Engine.Timeout)
	}
	if cfg.Render.MeshCells != 200 {
		t.Errorf("render.mesh_cells = %d", cfg.Render.MeshCells)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, Default() = %+v", *cfg, *Default())
	}
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, "envelope.yaml", `
log:
  level: debug
  format: json
document:
  wall_thickness: 300
engine:
  timeout: 2s
export:
  scale: 40
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Document.WallThickness != 300 {
		t.Errorf("wall_thickness = %g", cfg.Document.WallThickness)
	}
	if cfg.Document.UnconnectedHeight != 3000 {
		t.Errorf("unconnected_height should keep its default, got %g", cfg.Document.UnconnectedHeight)
	}
	if cfg.Engine.Timeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.Engine.Timeout)
	}
	if cfg.Export.Scale != 40 || cfg.Export.Margin != 24 {
		t.Errorf("export = %+v", cfg.Export)
	}
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "envelope.yaml"), []byte("render:\n  mesh_cells: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.MeshCells != 64 {
		t.Errorf("mesh_cells = %d, want 64", cfg.Render.MeshCells)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVELOPE_LOG_LEVEL", "warn")
	t.Setenv("ENVELOPE_DOCUMENT_WALL_THICKNESS", "250")
	t.Setenv("ENVELOPE_ENGINE_TIMEOUT", "750ms")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	if cfg.Document.WallThickness != 250 {
		t.Errorf("wall_thickness = %g", cfg.Document.WallThickness)
	}
	if cfg.Engine.Timeout != 750*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Engine.Timeout)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	p := writeFile(t, "bad.yaml", "log:\n  level: loud\nrender:\n  mesh_cells: 2\n")
	_, err := Load(p)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	for _, want := range []string{"log.level", "render.mesh_cells"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors for a zero config")
	}
	for _, want := range []string{
		"log.level", "log.format", "document.wall_thickness", "document.unconnected_height",
		"engine.timeout", "render.mesh_cells", "export.scale",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s", want)
		}
	}
}
