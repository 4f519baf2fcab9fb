// Command medial tetrahedralizes closed surfaces and extracts their
// medial axis. Surfaces come from v/f mesh files or from shape scripts.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chazu/medial/internal/config"
	"github.com/chazu/medial/internal/logging"
	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/meshio"
	"github.com/chazu/medial/pkg/pipeline"
	"github.com/chazu/medial/pkg/pointset"
	"github.com/chazu/medial/pkg/skeleton"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// cli holds the state shared by every command once flags are parsed.
type cli struct {
	configPath string
	out        string
	tetsOut    string
	hullOut    string
	flags      config.Config

	cfg config.Config
	log *zap.Logger
	app *App
}

func main() {
	c := &cli{}
	root := c.rootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "medial:", err)
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "medial",
		Short:             "Delaunay tetrahedralization and medial-axis extraction",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file")
	pf.StringVarP(&c.out, "out", "o", "-", "output file, - for stdout")
	pf.IntVar(&c.flags.Workers, "workers", def.Workers, "worker goroutines for scan and filter")
	pf.Float64Var(&c.flags.Weld, "weld", def.Weld, "merge input points closer than this; 0 disables")
	pf.StringVar(&c.flags.Axis, "axis", def.Axis, "containment ray: skewed, x, y or z")
	pf.Float64Var(&c.flags.SuperScale, "super-scale", def.SuperScale, "super-tetrahedron scale factor")
	pf.BoolVar(&c.flags.Strict, "strict", def.Strict, "fail on faces shared by more than two cells")
	pf.IntVar(&c.flags.Cells, "cells", def.Cells, "marching-cubes resolution for shape scripts")
	pf.DurationVar(&c.flags.Timeout, "timeout", def.Timeout, "shape-script evaluation timeout")
	pf.StringVar(&c.flags.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")

	root.AddCommand(c.skeletonCmd(), c.scriptCmd(), c.insideCmd(), c.pointsCmd())
	return root
}

// setup loads the config file, applies explicitly set flags over it and
// builds the logger and backend.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	overlay := map[string]func(){
		"workers":     func() { cfg.Workers = c.flags.Workers },
		"weld":        func() { cfg.Weld = c.flags.Weld },
		"axis":        func() { cfg.Axis = c.flags.Axis },
		"super-scale": func() { cfg.SuperScale = c.flags.SuperScale },
		"strict":      func() { cfg.Strict = c.flags.Strict },
		"cells":       func() { cfg.Cells = c.flags.Cells },
		"timeout":     func() { cfg.Timeout = c.flags.Timeout },
		"log-level":   func() { cfg.LogLevel = c.flags.LogLevel },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := overlay[f.Name]; ok {
			apply()
		}
	})
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "config")
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg, c.log = cfg, log
	c.app = NewApp(cfg, log)
	return nil
}

func (c *cli) skeletonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skeleton <mesh>",
		Short: "Extract the medial axis of a closed v/f mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := meshio.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := c.app.SkeletonOf(cmd.Context(), m.Points, m.Faces())
			if err != nil {
				return err
			}
			return c.writeResults([]*pipeline.Result{res})
		},
	}
	c.resultFlags(cmd)
	return cmd
}

func (c *cli) scriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script <file>",
		Short: "Evaluate a shape script and extract the medial axis of each shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "read %s", args[0])
			}
			meshes, err := c.app.ScriptMeshes(string(source))
			if err != nil {
				return err
			}
			if len(meshes) == 0 {
				return errors.Errorf("%s defines no shapes", args[0])
			}

			results := make([]*pipeline.Result, 0, len(meshes))
			for _, m := range meshes {
				res, err := c.app.SkeletonOf(cmd.Context(), m.Points(), m.Faces())
				if err != nil {
					return errors.Wrapf(err, "shape %s", m.PartName)
				}
				c.log.Info("shape skeleton",
					zap.String("shape", m.PartName),
					zap.Int("triangles", m.TriangleCount()),
					zap.Int("edges", len(res.Edges)),
				)
				results = append(results, res)
			}
			return c.writeResults(results)
		},
	}
	c.resultFlags(cmd)
	return cmd
}

func (c *cli) resultFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.tetsOut, "tets-out", "", "also write the inside tetrahedra to this file")
	cmd.Flags().StringVar(&c.hullOut, "hull-out", "", "also write the surface of the inside tetrahedra to this file")
}

func (c *cli) insideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inside <mesh> <points>",
		Short: "Classify the v records of a points file against a closed mesh",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := meshio.ReadFile(args[0])
			if err != nil {
				return err
			}
			q, err := meshio.ReadFile(args[1])
			if err != nil {
				return err
			}
			inside := c.app.Contains(m, q.Points)
			n := 0
			for _, in := range inside {
				if in {
					n++
				}
			}
			c.log.Info("classified points",
				zap.Int("points", len(q.Points)),
				zap.Int("inside", n),
				zap.Int("faces", len(m.Triangles)),
			)
			return c.withOutput(c.out, func(w io.Writer) error {
				for i, p := range q.Points {
					if _, err := fmt.Fprintf(w, "%g %g %g %t\n", p.X, p.Y, p.Z, inside[i]); err != nil {
						return errors.Wrap(err, "write classification")
					}
				}
				return nil
			})
		},
	}
}

func (c *cli) pointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Generate point clouds as v records",
	}

	var (
		n       int
		spacing float64
	)
	grid := &cobra.Command{
		Use:   "grid",
		Short: "Regular n×n×n lattice",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.writePoints(pointset.Grid(n, spacing))
		},
	}
	grid.Flags().IntVarP(&n, "per-axis", "n", pointset.DefaultGridSize, "points per axis")
	grid.Flags().Float64Var(&spacing, "spacing", pointset.DefaultGridSpacing, "lattice spacing")

	var (
		count int
		size  float64
		seed  int64
	)
	random := &cobra.Command{
		Use:   "random",
		Short: "Uniform random points in a cube",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.writePoints(pointset.Random(count, size, seed))
		},
	}
	random.Flags().IntVarP(&count, "count", "n", pointset.DefaultRandomCount, "number of points")
	random.Flags().Float64Var(&size, "size", pointset.DefaultRandomExtent, "cube edge length")
	random.Flags().Int64Var(&seed, "seed", 1, "random seed")

	cmd.AddCommand(grid, random)
	return cmd
}

func (c *cli) writePoints(points []geom.Point) error {
	return c.withOutput(c.out, func(w io.Writer) error {
		return meshio.Write(w, &meshio.Mesh{Points: points})
	})
}

// writeResults writes the skeleton edges of every result to --out and, if
// requested, the inside tetrahedra to --tets-out and their surface to
// --hull-out.
func (c *cli) writeResults(results []*pipeline.Result) error {
	var (
		edges []geom.Edge
		tets  []geom.Tetrahedron
		hull  = &meshio.Mesh{}
	)
	for _, r := range results {
		edges = append(edges, r.Edges...)
		tets = append(tets, r.Inside...)
		hull = appendMesh(hull, Hull(r))
	}
	g := skeleton.BuildGraph(edges)
	c.log.Info("skeleton graph",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("links", g.LinkCount()),
		zap.Float64("length", g.Length()),
		zap.Int("branches", len(g.Branches())),
		zap.Int("endpoints", len(g.Endpoints())),
		zap.Int("components", g.Components()),
	)

	err := c.withOutput(c.out, func(w io.Writer) error {
		return meshio.WriteSkeleton(w, edges)
	})
	if err != nil {
		return err
	}
	if c.tetsOut != "" {
		err = c.withOutput(c.tetsOut, func(w io.Writer) error {
			return meshio.WriteTetrahedra(w, tets)
		})
		if err != nil {
			return err
		}
	}
	if c.hullOut == "" {
		return nil
	}
	return c.withOutput(c.hullOut, func(w io.Writer) error {
		return meshio.Write(w, hull)
	})
}

// appendMesh appends b to a, offsetting b's triangle indices.
func appendMesh(a, b *meshio.Mesh) *meshio.Mesh {
	base := len(a.Points)
	a.Points = append(a.Points, b.Points...)
	for _, t := range b.Triangles {
		a.Triangles = append(a.Triangles, [3]int{t[0] + base, t[1] + base, t[2] + base})
	}
	return a
}

func (c *cli) withOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
