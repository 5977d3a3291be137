package output

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/linework/pkg/path"
)

// SaveDXF writes every path segment as a DXF line entity.
func SaveDXF(file string, ps path.Paths) error {
	d := render.NewDXF(file)
	for _, p := range ps {
		for i := 1; i < len(p); i++ {
			a, b := p[i-1], p[i]
			d.Line(&sdf.Line2{v2.Vec{X: a.X, Y: a.Y}, v2.Vec{X: b.X, Y: b.Y}})
		}
	}
	if err := d.Save(); err != nil {
		return fmt.Errorf("dxf: %w", err)
	}
	return nil
}
