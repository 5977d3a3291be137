// Package output encodes rendered paths as SVG, PNG, DXF or plain text.
//
// Paths are expected in pixel space with y increasing upwards, as produced
// by scene.Render. Encoders that use a y-down device space flip it.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/linework/pkg/path"
)

// ErrFormat is returned by Save for an unsupported file extension.
var ErrFormat = errors.New("output: unsupported format")

// Style controls how polylines are drawn.
type Style struct {
	Stroke      string
	StrokeWidth float64
	// Background fills the canvas. Empty leaves SVG transparent.
	Background string
}

// DefaultStyle draws black lines on white.
func DefaultStyle() Style {
	return Style{Stroke: "black", StrokeWidth: 2.5, Background: "white"}
}

// Save writes paths to file, choosing the encoder from the extension:
// .svg, .png, .dxf or .txt.
func Save(file string, ps path.Paths, width, height float64, style Style) error {
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".dxf":
		return SaveDXF(file, ps)
	case ".svg", ".png", ".txt":
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	switch ext {
	case ".svg":
		err = WriteSVG(f, ps, width, height, style)
	case ".png":
		err = WritePNG(f, ps, width, height, style)
	case ".txt":
		err = WriteText(f, ps)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", file, err)
	}
	return f.Close()
}

// errWriter remembers the first write error so encoders that do not report
// errors can be checked afterwards.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
