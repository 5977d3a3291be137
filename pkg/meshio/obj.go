package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/linework/pkg/shape"
)

// LoadOBJ reads the vertices and faces of a Wavefront OBJ stream. Faces
// with more than three vertices are split into a fan. Other statements are
// ignored.
func LoadOBJ(r io.Reader) (*shape.Mesh, error) {
	// OBJ indices are 1-based
	vs := []v3.Vec{{}}
	var triangles []*shape.Triangle

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates: %w", line, ErrFormat)
			}
			var f [3]float64
			for i := range f {
				x, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				f[i] = x
			}
			vs = append(vs, v3.Vec{X: f[0], Y: f[1], Z: f[2]})
		case "f":
			idx := make([]int, 0, len(fields)-1)
			for _, arg := range fields[1:] {
				i, err := parseIndex(arg, len(vs))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				triangles = append(triangles, shape.NewTriangle(vs[idx[0]], vs[idx[i]], vs[idx[i+1]]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return shape.NewMesh(triangles), nil
}

// parseIndex resolves the vertex part of a face token such as "3/1/2".
// Negative indices count back from the most recent vertex.
func parseIndex(token string, n int) (int, error) {
	s, _, _ := strings.Cut(token, "/")
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i += n
	}
	if i <= 0 || i >= n {
		return 0, fmt.Errorf("vertex index %s out of range: %w", s, ErrFormat)
	}
	return i, nil
}
