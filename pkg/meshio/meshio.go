// Package meshio reads and writes triangle meshes in OBJ and STL form.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/linework/pkg/shape"
)

// ErrFormat is returned for files whose format cannot be determined or
// whose contents do not match it.
var ErrFormat = errors.New("meshio: unrecognized format")

// Load reads a mesh file, choosing the parser from its extension.
func Load(path string) (*shape.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".obj" && ext != ".stl" {
		return nil, fmt.Errorf("%w: extension %q", ErrFormat, ext)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}

	var m *shape.Mesh
	var err error
	if ext == ".stl" {
		m, err = LoadSTL(path)
	} else {
		m, err = loadOBJFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

func loadOBJFile(path string) (*shape.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadOBJ(f)
}

// Save writes m in the format named by the path's extension. Only STL is
// written.
func Save(path string, m *shape.Mesh) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".stl" {
		return fmt.Errorf("%w: cannot write %q", ErrFormat, ext)
	}
	if err := SaveSTL(path, m); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
