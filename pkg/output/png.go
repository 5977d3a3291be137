package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/chazu/linework/pkg/path"
)

var namedColors = map[string]string{
	"black": "000000",
	"white": "ffffff",
	"red":   "ff0000",
	"green": "008000",
	"blue":  "0000ff",
	"gray":  "808080",
	"grey":  "808080",
}

// parseColor accepts a few CSS colour names or a hex string.
func parseColor(s string) gg.RGBA {
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return gg.Hex(hex)
	}
	return gg.Hex(s)
}

// Rasterize draws paths onto a new context. The caller must Close it.
func Rasterize(ps path.Paths, width, height float64, style Style) (*gg.Context, error) {
	w := int(math.Ceil(width))
	h := int(math.Ceil(height))
	dc := gg.NewContext(w, h)
	if style.Background != "" {
		dc.ClearWithColor(parseColor(style.Background))
	}
	dc.SetColor(parseColor(style.Stroke).Color())
	dc.SetLineWidth(style.StrokeWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, p := range ps {
		if len(p) < 2 {
			continue
		}
		dc.MoveTo(p[0].X, height-p[0].Y)
		for _, v := range p[1:] {
			dc.LineTo(v.X, height-v.Y)
		}
	}
	if err := dc.Stroke(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("png: stroke: %w", err)
	}
	return dc, nil
}

// WritePNG rasterizes paths and encodes the image as PNG.
func WritePNG(w io.Writer, ps path.Paths, width, height float64, style Style) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("png: bad size %gx%g", width, height)
	}
	dc, err := Rasterize(ps, width, height, style)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}
