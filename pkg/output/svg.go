package output

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/chazu/linework/pkg/path"
)

// WriteSVG writes one polyline per path inside a group that flips y so the
// drawing keeps its orientation.
func WriteSVG(w io.Writer, ps path.Paths, width, height float64, style Style) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	if style.Background != "" {
		canvas.Rect(0, 0, width, height, "fill:"+style.Background)
	}
	canvas.Gtransform(fmt.Sprintf("translate(0,%g) scale(1,-1)", height))
	lineStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", style.Stroke, style.StrokeWidth)
	for _, p := range ps {
		xs := make([]float64, len(p))
		ys := make([]float64, len(p))
		for i, v := range p {
			xs[i], ys[i] = v.X, v.Y
		}
		canvas.Polyline(xs, ys, lineStyle)
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}
