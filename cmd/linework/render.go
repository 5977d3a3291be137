package main

import (
	"fmt"
	"path/filepath"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spf13/cobra"

	"github.com/chazu/linework/pkg/assemble"
	"github.com/chazu/linework/pkg/config"
	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/graph"
	"github.com/chazu/linework/pkg/kernel/sdfx"
	"github.com/chazu/linework/pkg/output"
	"github.com/chazu/linework/pkg/path"
	"github.com/chazu/linework/pkg/scene"
)

type renderFlags struct {
	out     string
	width   float64
	height  float64
	step    float64
	fovy    float64
	workers int
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render SCENE -o OUT",
		Short: "Render a scene to SVG, PNG, DXF or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.out, "output", "o", "out.svg", "output file; the extension selects the format")
	fl.Float64Var(&f.width, "width", 0, "image width in pixels")
	fl.Float64Var(&f.height, "height", 0, "image height in pixels")
	fl.Float64Var(&f.step, "step", 0, "visibility sampling distance; 0 tests vertices only")
	fl.Float64Var(&f.fovy, "fovy", 0, "vertical field of view in degrees")
	fl.IntVar(&f.workers, "workers", 0, "visibility workers; 0 uses every CPU")
	return cmd
}

// view is the resolved camera for one render.
type view struct {
	eye, center, up v3.Vec
	fovy            float64
}

// resolveView layers the scene's camera over the configured one.
func resolveView(cfg config.Config, c *graph.Camera) view {
	v := view{
		eye:    cfg.Camera.EyeVec(),
		center: cfg.Camera.CenterVec(),
		up:     cfg.Camera.UpVec(),
		fovy:   cfg.Render.FovY,
	}
	if c == nil {
		return v
	}
	if c.Eye != nil {
		v.eye = c.Eye.Vec()
	}
	if c.Center != nil {
		v.center = c.Center.Vec()
	}
	if c.Up != nil {
		v.up = c.Up.Vec()
	}
	if c.Fovy > 0 {
		v.fovy = c.Fovy
	}
	return v
}

func (a *app) render(cmd *cobra.Command, file string, f renderFlags) error {
	g, err := a.loadScene(cmd.Context(), file, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg := a.cfg
	v := resolveView(cfg, g.Camera)
	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Render.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Render.Height = f.height
	}
	if fl.Changed("step") {
		cfg.Render.Step = f.step
	}
	if fl.Changed("workers") {
		cfg.Render.Workers = f.workers
	}
	if fl.Changed("fovy") {
		v.fovy = f.fovy
	}
	cfg.Render.FovY = v.fovy
	if err := cfg.Validate(); err != nil {
		return err
	}

	shapes, err := assemble.Assemble(g, assemble.Options{
		MaxRetries: cfg.CSG.MaxRetries,
		Cells:      cfg.Kernel.Cells,
		BaseDir:    filepath.Dir(file),
		Kernel:     sdfx.New(),
		Eye:        v.eye,
		Up:         v.up,
	})
	if err != nil {
		return err
	}
	if len(shapes) == 0 {
		return fmt.Errorf("%s: scene has no shapes", file)
	}

	sc := scene.New(shapes...)
	sc.Workers = cfg.Render.Workers
	r := cfg.Render
	m := geom.LookAt(v.eye, v.center, v.up).WithPerspective(v.fovy, r.Width/r.Height, r.Near, r.Far)
	ps, err := sc.RenderContext(cmd.Context(), m, v.eye, r.Width, r.Height, r.Step)
	if err != nil {
		return err
	}

	return savePaths(f.out, ps, r.Width, r.Height, a)
}

func savePaths(file string, ps path.Paths, width, height float64, a *app) error {
	if err := output.Save(file, ps, width, height, a.cfg.Output.Style()); err != nil {
		return err
	}
	a.log.Info("wrote drawing", "output", file, "paths", len(ps), "points", ps.Points())
	return nil
}
