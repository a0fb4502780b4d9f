package main

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/chazu/envelope/pkg/builder"
	"github.com/chazu/envelope/pkg/config"
	"github.com/chazu/envelope/pkg/engine"
	"github.com/chazu/envelope/pkg/export"
	"github.com/chazu/envelope/pkg/host/memhost"
	"github.com/chazu/envelope/pkg/kernel"
	"github.com/chazu/envelope/pkg/kernel/sdfx"
	"github.com/chazu/envelope/pkg/tessellate"
	"github.com/chazu/envelope/pkg/units"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
	logger *slog.Logger
	newDoc func() *memhost.Document
	plan   export.Options
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Message  string `json:"message"`
	Building string `json:"building,omitempty"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
	// PlanSVG is the plan view of everything that was built.
	PlanSVG string `json:"planSvg"`
}

// NewApp creates an App with the default configuration.
func NewApp() *App {
	return NewAppWithConfig(config.Default(), slog.Default())
}

// NewAppWithConfig creates an App whose engine, document and kernel follow
// cfg.
func NewAppWithConfig(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		engine: engine.NewEngine(engine.WithTimeout(cfg.Engine.Timeout)),
		kernel: sdfx.NewWithResolution(cfg.Render.MeshCells),
		logger: logger,
		newDoc: func() *memhost.Document {
			return memhost.NewDefault(
				memhost.WithWallThickness(units.Length(cfg.Document.WallThickness)),
				memhost.WithUnconnectedHeight(units.Length(cfg.Document.UnconnectedHeight)),
				memhost.WithLogger(logger),
			)
		},
		plan: export.Options{Scale: cfg.Export.Scale, Margin: cfg.Export.Margin},
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Evaluate takes a building script and returns mesh data + errors.
// This is the primary binding called by the frontend editor. Every
// evaluation builds into a fresh document; a building that fails is left
// out and reported while the others are still shown.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into building plans.
	plans, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.logger.Error("evaluate fatal error", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:     e.Line,
				Col:      e.Col,
				Message:  e.Message,
				Building: e.Building,
			})
		}
		return result
	}
	for _, w := range engine.Warnings(plans) {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:     w.Line,
			Col:      w.Col,
			Message:  w.Message,
			Building: w.Building,
		})
	}

	// Step 3: Build every plan into a fresh document.
	doc := a.newDoc()
	b := builder.New(doc, builder.WithLogger(a.logger))
	for _, p := range plans {
		if _, err := b.Build(a.context(), p); err != nil {
			a.logger.Warn("build failed", "building", p.Name, "error", err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message:  builder.FailureMessage(err),
				Building: p.Name,
			})
		}
	}
	model := doc.Snapshot()
	if model.Empty() {
		return result
	}

	// Step 4: Tessellate the model into triangle meshes.
	meshes, err := tessellate.Tessellate(model, a.kernel)
	if err != nil {
		a.logger.Error("tessellate failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: Convert kernel meshes to the frontend MeshData format.
	for i, m := range meshes {
		color := colorPalette[i%len(colorPalette)]
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    color,
		})
	}

	var svg bytes.Buffer
	if err := export.SVG(&svg, model, a.plan); err != nil {
		a.logger.Warn("plan view failed", "error", err)
	} else {
		result.PlanSVG = svg.String()
	}

	return result
}
