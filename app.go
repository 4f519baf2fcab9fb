package main

import (
	"context"
	"strings"
	"time"

	"github.com/chazu/medial/internal/config"
	"github.com/chazu/medial/pkg/containment"
	"github.com/chazu/medial/pkg/engine"
	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/kernel"
	"github.com/chazu/medial/pkg/kernel/sdfx"
	"github.com/chazu/medial/pkg/meshio"
	"github.com/chazu/medial/pkg/pipeline"
	"github.com/chazu/medial/pkg/scene"
	"github.com/chazu/medial/pkg/tessellate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// colorPalette is a default palette used to assign distinct colors to shapes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the application backend shared by the CLI commands. Its exported
// methods return JSON-serializable results.
type App struct {
	cfg    config.Config
	log    *zap.Logger
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float64 `json:"vertices"`
	Normals  []float64 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the result of tessellating a shape script.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// SkeletonData summarises the medial axis of one closed surface.
type SkeletonData struct {
	Name       string          `json:"name"`
	Points     int             `json:"points"`
	Tetrahedra int             `json:"tetrahedra"`
	Inside     int             `json:"inside"`
	Internal   int             `json:"internalFaces"`
	Boundary   int             `json:"boundaryFaces"`
	Volume     float64         `json:"volume"`
	Edges      [][2][3]float64 `json:"edges"`
	Millis     float64         `json:"millis"`
}

// SkeletonResult is the result of a skeleton request.
type SkeletonResult struct {
	Skeletons []SkeletonData  `json:"skeletons"`
	Errors    []EvalErrorData `json:"errors"`
}

// NewApp creates an App with an engine and the sdfx kernel.
func NewApp(cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		cfg:    cfg,
		log:    log,
		engine: engine.NewEngine(engine.WithTimeout(cfg.Timeout), engine.WithLogger(log)),
		kernel: sdfx.New(),
	}
}

// Evaluate takes shape-script source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	meshes, evalErrs, warnings := a.meshes(source)
	if len(evalErrs) > 0 {
		result.Errors = evalErrs
		return result
	}
	result.Warnings = append(result.Warnings, warnings...)

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// EvaluateScript evaluates a shape script and extracts the medial axis of
// every shape it defines.
func (a *App) EvaluateScript(source string) SkeletonResult {
	result := SkeletonResult{Skeletons: []SkeletonData{}, Errors: []EvalErrorData{}}

	meshes, evalErrs, _ := a.meshes(source)
	if len(evalErrs) > 0 {
		result.Errors = evalErrs
		return result
	}
	for _, m := range meshes {
		res, err := a.SkeletonOf(context.Background(), m.Points(), m.Faces())
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{Message: m.PartName + ": " + err.Error()})
			continue
		}
		result.Skeletons = append(result.Skeletons, skeletonData(m.PartName, res))
	}
	return result
}

// Skeleton parses a v/f mesh and extracts its medial axis.
func (a *App) Skeleton(meshText string) SkeletonResult {
	result := SkeletonResult{Skeletons: []SkeletonData{}, Errors: []EvalErrorData{}}

	m, err := meshio.Read(strings.NewReader(meshText))
	if err != nil {
		var pe *meshio.ParseError
		if errors.As(err, &pe) {
			result.Errors = append(result.Errors, EvalErrorData{Line: pe.Line, Message: pe.Msg})
		} else {
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		}
		return result
	}

	res, err := a.SkeletonOf(context.Background(), m.Points, m.Faces())
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Skeletons = append(result.Skeletons, skeletonData("mesh", res))
	return result
}

// SkeletonOf runs the medial-axis pipeline on points bounded by faces.
func (a *App) SkeletonOf(ctx context.Context, points []geom.Point, faces []geom.Face) (*pipeline.Result, error) {
	return pipeline.Run(ctx, pipeline.Input{Points: points, Boundary: faces}, pipeline.Config{
		Weld:       a.cfg.Weld,
		Workers:    a.cfg.Workers,
		Axis:       a.cfg.RayAxis(),
		SuperScale: a.cfg.SuperScale,
		Strict:     a.cfg.Strict,
		Logger:     a.log,
	})
}

// Contains classifies each point against the closed surface m. Every
// query spreads its face crossings over the configured workers.
func (a *App) Contains(m *meshio.Mesh, points []geom.Point) []bool {
	t := containment.NewTester(m.Faces(),
		containment.WithAxis(a.cfg.RayAxis()),
		containment.WithWorkers(a.cfg.Workers),
	)
	inside := make([]bool, len(points))
	for i, p := range points {
		inside[i] = t.InsideParallel(p)
	}
	return inside
}

// Hull returns the outer surface of res's inside tetrahedra: every face
// owned by exactly one of them.
func Hull(res *pipeline.Result) *meshio.Mesh {
	cells := res.Adjacency.Boundary()
	faces := make([]geom.Face, len(cells))
	for i, c := range cells {
		faces[i] = c.Face
	}
	return meshio.FromFaces(faces)
}

// ScriptMeshes evaluates source and tessellates every shape.
func (a *App) ScriptMeshes(source string) ([]*kernel.Mesh, error) {
	meshes, evalErrs, warnings := a.meshes(source)
	for _, w := range warnings {
		a.log.Warn("shape script", zap.String("finding", w.Message))
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = engine.EvalError{Line: e.Line, Col: e.Col, Message: e.Message}.Error()
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}
	return meshes, nil
}

// meshes evaluates and tessellates source, folding every failure into
// frontend errors. Non-blocking scene findings come back as warnings.
func (a *App) meshes(source string) ([]*kernel.Mesh, []EvalErrorData, []EvalErrorData) {
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		if errors.Is(err, engine.ErrTimeout) || errors.Is(err, engine.ErrSuperseded) {
			a.log.Warn("evaluation abandoned", zap.Error(err))
		} else {
			a.log.Error("evaluate fatal error", zap.Error(err))
		}
		return nil, []EvalErrorData{{Message: err.Error()}}, nil
	}
	if len(evalErrs) > 0 {
		out := make([]EvalErrorData, len(evalErrs))
		for i, e := range evalErrs {
			out[i] = EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
		}
		return nil, out, nil
	}

	var warnings []EvalErrorData
	for _, f := range scene.Validate(g) {
		if f.Severity == scene.SeverityWarning {
			warnings = append(warnings, EvalErrorData{Message: f.Error()})
		}
	}

	meshes, err := tessellate.Tessellate(g, a.kernel, a.cfg.Cells)
	if err != nil {
		a.log.Error("tessellate error", zap.Error(err))
		return nil, []EvalErrorData{{Message: "tessellation failed: " + err.Error()}}, warnings
	}
	return meshes, nil, warnings
}

func skeletonData(name string, res *pipeline.Result) SkeletonData {
	edges := make([][2][3]float64, len(res.Edges))
	for i, e := range res.Edges {
		edges[i] = [2][3]float64{{e.P1.X, e.P1.Y, e.P1.Z}, {e.P2.X, e.P2.Y, e.P2.Z}}
	}
	return SkeletonData{
		Name:       name,
		Points:     len(res.Points),
		Tetrahedra: len(res.Tetrahedra),
		Inside:     len(res.Inside),
		Internal:   res.Internal,
		Boundary:   res.Boundary,
		Volume:     res.Volume,
		Edges:      edges,
		Millis:     float64(res.Timings.Total) / float64(time.Millisecond),
	}
}
