package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/linework/pkg/config"
	"github.com/chazu/linework/pkg/graph"
	"github.com/chazu/linework/pkg/meshio"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errb bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errb)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errb.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestCheckValidScene(t *testing.T) {
	scene := writeFile(t, "ok.lisp", `(scene "one" (cube))`)
	out, _, err := run(t, "check", scene)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("check output = %q, want ok", out)
	}
}

func TestCheckReportsValidationErrors(t *testing.T) {
	scene := writeFile(t, "bad.lisp", `(scene (difference (sphere)))`)
	out, _, err := run(t, "check", scene)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(out, "at least 2") {
		t.Errorf("check output = %q, want operand count error", out)
	}
}

func TestCheckReportsEvalErrors(t *testing.T) {
	scene := writeFile(t, "bad.lisp", `(place (shape "nowhere"))`)
	out, _, err := run(t, "check", scene)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(out, "nowhere") {
		t.Errorf("check output = %q, want the missing shape name", out)
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, _, err := run(t, "check", filepath.Join(t.TempDir(), "absent.lisp")); err == nil {
		t.Fatal("expected an error for a missing scene file")
	}
}

func TestRenderSVG(t *testing.T) {
	scene := writeFile(t, "cube.lisp", `(scene (cube))`)
	out := filepath.Join(t.TempDir(), "cube.svg")
	if _, stderr, err := run(t, "render", scene, "-o", out, "--width", "200", "--height", "150", "--step", "0"); err != nil {
		t.Fatalf("render failed: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) || !bytes.Contains(data, []byte("polyline")) {
		t.Errorf("output is not an SVG drawing:\n%s", data)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	scene := writeFile(t, "cube.lisp", `(scene (cube))`)
	out := filepath.Join(t.TempDir(), "cube.bmp")
	if _, _, err := run(t, "render", scene, "-o", out, "--step", "0"); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestRenderRejectsBadOverride(t *testing.T) {
	scene := writeFile(t, "cube.lisp", `(scene (cube))`)
	out := filepath.Join(t.TempDir(), "cube.svg")
	if _, _, err := run(t, "render", scene, "-o", out, "--fovy", "200"); err == nil {
		t.Fatal("expected an error for fovy 200")
	}
}

func TestRenderExamples(t *testing.T) {
	examples, err := filepath.Glob("../../examples/*.lisp")
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) == 0 {
		t.Fatal("no example scenes found")
	}
	for _, ex := range examples {
		t.Run(filepath.Base(ex), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.txt")
			_, stderr, err := run(t, "render", ex, "-o", out, "--width", "256", "--height", "256", "--step", "0.05")
			if err != nil {
				t.Fatalf("render failed: %v\n%s", err, stderr)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("stat output: %v", err)
			}
			if info.Size() == 0 {
				t.Error("example rendered no paths")
			}
		})
	}
}

func TestExportSTL(t *testing.T) {
	scene := writeFile(t, "parts.lisp", `
(scene
  (cube :min (vec3 0 0 0) :max (vec3 1 1 1))
  (place (sphere :radius 0.5) :at (vec3 3 0 0)))
`)
	out := filepath.Join(t.TempDir(), "parts.stl")
	if _, stderr, err := run(t, "export-stl", scene, "-o", out, "--cells", "16"); err != nil {
		t.Fatalf("export-stl failed: %v\n%s", err, stderr)
	}
	m, err := meshio.Load(out)
	if err != nil {
		t.Fatalf("load STL: %v", err)
	}
	if len(m.Triangles) == 0 {
		t.Error("exported mesh is empty")
	}
	box := m.BoundingBox()
	if box.Max.X < 3 {
		t.Errorf("exported mesh max x = %f, want the placed sphere near 3.5", box.Max.X)
	}
}

func TestExportSTLPart(t *testing.T) {
	scene := writeFile(t, "part.lisp", `
(defshape "ball" (sphere :radius 2))
(scene (cube) (shape "ball"))
`)
	out := filepath.Join(t.TempDir(), "ball.stl")
	if _, stderr, err := run(t, "export-stl", scene, "-o", out, "--part", "ball", "--cells", "16"); err != nil {
		t.Fatalf("export-stl failed: %v\n%s", err, stderr)
	}
	m, err := meshio.Load(out)
	if err != nil {
		t.Fatalf("load STL: %v", err)
	}
	if box := m.BoundingBox(); box.Max.X < 1.7 {
		t.Errorf("ball max x = %f, want near 2", box.Max.X)
	}
}

func TestExportSTLUnknownPart(t *testing.T) {
	scene := writeFile(t, "part.lisp", `(scene (cube))`)
	out := filepath.Join(t.TempDir(), "x.stl")
	if _, _, err := run(t, "export-stl", scene, "-o", out, "--part", "missing"); err == nil {
		t.Fatal("expected an error for an unknown part")
	}
}

const tetraOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func TestSlice(t *testing.T) {
	mesh := writeFile(t, "tetra.obj", tetraOBJ)
	out := filepath.Join(t.TempDir(), "slice.txt")
	if _, stderr, err := run(t, "slice", mesh, "-o", out, "--z", "0.25", "--z", "0.5"); err != nil {
		t.Fatalf("slice failed: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// The three side faces cross each plane once; the base is below both.
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n") + 1; lines != 6 {
		t.Errorf("slice wrote %d segments, want 6:\n%s", lines, data)
	}
}

func TestSliceMissesMesh(t *testing.T) {
	mesh := writeFile(t, "tetra.obj", tetraOBJ)
	out := filepath.Join(t.TempDir(), "slice.svg")
	if _, _, err := run(t, "slice", mesh, "-o", out, "--z", "5"); err == nil {
		t.Fatal("expected an error when no plane hits the mesh")
	}
}

func TestConfigPrintDefaults(t *testing.T) {
	out, _, err := run(t, "config", "print")
	if err != nil {
		t.Fatalf("config print failed: %v", err)
	}
	if !strings.Contains(out, "max_retries = 1000") {
		t.Errorf("config print missing csg defaults:\n%s", out)
	}
}

func TestConfigFileOverrides(t *testing.T) {
	cfg := writeFile(t, "linework.toml", "[render]\nwidth = 300\n")
	out, _, err := run(t, "--config", cfg, "config", "print")
	if err != nil {
		t.Fatalf("config print failed: %v", err)
	}
	if !strings.Contains(out, "width = 300") {
		t.Errorf("config file width not applied:\n%s", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, _, err := run(t, "--log-level", "loud", "config", "print"); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestResolveView(t *testing.T) {
	cfg := config.Default()

	v := resolveView(cfg, nil)
	if v.eye != cfg.Camera.EyeVec() || v.fovy != cfg.Render.FovY {
		t.Errorf("resolveView(nil) = %+v, want configured camera", v)
	}

	v = resolveView(cfg, &graph.Camera{Eye: &graph.Vec3{X: 9}, Fovy: 12})
	if v.eye.X != 9 || v.fovy != 12 {
		t.Errorf("scene camera not applied: %+v", v)
	}
	if v.center != cfg.Camera.CenterVec() || v.up != cfg.Camera.UpVec() {
		t.Errorf("unset scene camera fields should keep the configured values: %+v", v)
	}
}
