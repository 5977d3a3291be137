package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/meshio"
	"github.com/chazu/linework/pkg/path"
)

// sliceMargin is the fraction of the canvas left empty around a slice.
const sliceMargin = 0.05

func newSliceCmd(a *app) *cobra.Command {
	var (
		out string
		zs  []float64
	)
	cmd := &cobra.Command{
		Use:   "slice MESH -o OUT --z HEIGHT",
		Short: "Cut a mesh with horizontal planes and draw the contours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := meshio.Load(args[0])
			if err != nil {
				return err
			}
			if len(zs) == 0 {
				zs = []float64{m.BoundingBox().Center().Z}
			}
			layers, err := m.Slice(cmd.Context(), zs, a.cfg.Render.Workers)
			if err != nil {
				return err
			}
			var ps path.Paths
			for i, layer := range layers {
				a.log.Debug("sliced", "z", zs[i], "segments", len(layer))
				ps.Extend(layer)
			}
			if len(ps) == 0 {
				return fmt.Errorf("%s: no plane intersects the mesh", args[0])
			}

			w, h := a.cfg.Render.Width, a.cfg.Render.Height
			ps = ps.Transform(fitCanvas(m.BoundingBox(), w, h))
			return savePaths(out, ps, w, h, a)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "slice.svg", "output file; the extension selects the format")
	cmd.Flags().Float64SliceVar(&zs, "z", nil, "plane heights; defaults to the middle of the mesh")
	return cmd
}

// fitCanvas maps the xy extent of box onto a width by height canvas,
// keeping the aspect ratio and centring it.
func fitCanvas(box geom.Box, width, height float64) geom.Matrix {
	size := box.Size()
	usable := 1 - 2*sliceMargin
	scale := math.Min(width*usable/math.Max(size.X, 1e-9), height*usable/math.Max(size.Y, 1e-9))
	c := box.Center()
	return geom.Translate(geom.Vec(-c.X, -c.Y, -c.Z)).
		Scaled(geom.Vec(scale, scale, 0)).
		Translated(geom.Vec(width/2, height/2, 0))
}
