package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/linework/pkg/kernel"
	"github.com/chazu/linework/pkg/kernel/sdfx"
	"github.com/chazu/linework/pkg/meshio"
	"github.com/chazu/linework/pkg/shape"
	"github.com/chazu/linework/pkg/tessellate"
)

func newExportSTLCmd(a *app) *cobra.Command {
	var (
		out   string
		part  string
		cells int
	)
	cmd := &cobra.Command{
		Use:   "export-stl SCENE -o OUT.stl",
		Short: "Tessellate the solid parts of a scene and save them as binary STL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadScene(cmd.Context(), args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cells") {
				cells = a.cfg.Kernel.Cells
			}
			k := sdfx.New()

			if part != "" {
				n := g.Lookup(part)
				if n == nil {
					return fmt.Errorf("no shape named %q", part)
				}
				s, err := tessellate.Solid(g, k, n)
				if err != nil {
					return err
				}
				return kernel.SaveSTL(out, k, s, cells)
			}

			meshes, err := tessellate.Tessellate(g, k, cells)
			if err != nil {
				return err
			}
			if len(meshes) == 0 {
				return fmt.Errorf("%s: no part of the scene can be tessellated", args[0])
			}
			var tris []*shape.Triangle
			for _, m := range meshes {
				a.log.Debug("tessellated part", "part", m.PartName, "triangles", m.TriangleCount())
				tris = append(tris, m.ToShape().Triangles...)
			}
			if err := meshio.SaveSTL(out, shape.NewMesh(tris)); err != nil {
				return err
			}
			a.log.Info("exported", "scene", args[0], "output", out, "parts", len(meshes), "triangles", len(tris))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "out.stl", "output STL file")
	cmd.Flags().StringVar(&part, "part", "", "export only the named shape")
	cmd.Flags().IntVar(&cells, "cells", 0, "marching cubes resolution along the longest axis")
	return cmd
}
