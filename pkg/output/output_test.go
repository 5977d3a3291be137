package output

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/linework/pkg/geom"
	"github.com/chazu/linework/pkg/path"
)

var square = path.Paths{
	{geom.Vec(10, 10, 0), geom.Vec(90, 10, 0), geom.Vec(90, 90, 0)},
	{geom.Vec(10, 10, 0), geom.Vec(10, 90, 0)},
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, square))
	assert.Equal(t, "10,10;90,10;90,90\n10,10;10,90\n", buf.String())
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, square, 100, 50, DefaultStyle()))
	out := buf.String()
	assert.Contains(t, out, `<svg width="100.00" height="50.00"`)
	assert.Contains(t, out, `transform="translate(0,50) scale(1,-1)"`)
	assert.Equal(t, 2, strings.Count(out, "<polyline"))
	assert.Contains(t, out, "fill:none;stroke:black;stroke-width:2.5")
	assert.Contains(t, out, "fill:white")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestWriteSVGTransparent(t *testing.T) {
	var buf bytes.Buffer
	style := DefaultStyle()
	style.Background = ""
	require.NoError(t, WriteSVG(&buf, nil, 10, 10, style))
	assert.NotContains(t, buf.String(), "<rect")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteError(t *testing.T) {
	err := WriteSVG(failingWriter{}, square, 10, 10, DefaultStyle())
	assert.EqualError(t, err, "disk full")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, square, 100, 50, DefaultStyle()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	assert.Error(t, WritePNG(&buf, square, 0, 50, DefaultStyle()))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, 1.0, parseColor("white").R)
	assert.Equal(t, 0.0, parseColor("Black").G)
	assert.Equal(t, 1.0, parseColor("#ff0000").R)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.svg", "out.png", "out.txt"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name)
			require.NoError(t, Save(file, square, 100, 100, DefaultStyle()))
			info, err := os.Stat(file)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	err := Save(filepath.Join(dir, "out.bmp"), square, 100, 100, DefaultStyle())
	assert.ErrorIs(t, err, ErrFormat)
}

func lineEntities(t *testing.T, file string) int {
	t.Helper()
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	n := 0
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) == "LINE" {
			n++
		}
	}
	return n
}

func TestSaveDXF(t *testing.T) {
	dir := t.TempDir()

	direct := filepath.Join(dir, "out.dxf")
	require.NoError(t, SaveDXF(direct, square))
	assert.GreaterOrEqual(t, lineEntities(t, direct), 3, "one LINE per segment")

	viaExt := filepath.Join(dir, "OUT.DXF")
	require.NoError(t, Save(viaExt, square, 100, 100, DefaultStyle()))
	assert.GreaterOrEqual(t, lineEntities(t, viaExt), 3)
}
