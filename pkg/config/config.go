// Package config loads renderer settings from TOML.
//
// Every key is optional; anything missing keeps the value from Default.
// Unknown keys are rejected so typos do not go unnoticed.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/linework/pkg/csg"
	"github.com/chazu/linework/pkg/output"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Render RenderConfig `toml:"render"`
	Camera CameraConfig `toml:"camera"`
	CSG    CSGConfig    `toml:"csg"`
	Output OutputConfig `toml:"output"`
	Kernel KernelConfig `toml:"kernel"`
	Log    LogConfig    `toml:"log"`
}

type RenderConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// FovY is the vertical field of view in degrees.
	FovY float64 `toml:"fovy"`
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`
	// Step is the visibility sampling distance; 0 tests vertices only.
	Step    float64 `toml:"step"`
	Workers int     `toml:"workers"`
}

type CameraConfig struct {
	Eye    [3]float64 `toml:"eye"`
	Center [3]float64 `toml:"center"`
	Up     [3]float64 `toml:"up"`
}

type CSGConfig struct {
	MaxRetries int `toml:"max_retries"`
}

type OutputConfig struct {
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
	Background  string  `toml:"background"`
}

type KernelConfig struct {
	// Cells is the marching cubes resolution along the longest axis.
	Cells int `toml:"cells"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	style := output.DefaultStyle()
	return Config{
		Render: RenderConfig{
			Width:  1024,
			Height: 1024,
			FovY:   50,
			Near:   0.1,
			Far:    100,
			Step:   0.01,
		},
		Camera: CameraConfig{
			Eye:    [3]float64{4, 3, 2},
			Center: [3]float64{0, 0, 0},
			Up:     [3]float64{0, 0, 1},
		},
		CSG: CSGConfig{MaxRetries: csg.DefaultMaxRetries},
		Output: OutputConfig{
			Stroke:      style.Stroke,
			StrokeWidth: style.StrokeWidth,
			Background:  style.Background,
		},
		Kernel: KernelConfig{Cells: 64},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		bad("render size %gx%g must be positive", r.Width, r.Height)
	}
	if r.FovY <= 0 || r.FovY >= 180 {
		bad("render.fovy %g must be between 0 and 180", r.FovY)
	}
	if r.Near <= 0 || r.Far <= r.Near {
		bad("render.near %g and render.far %g must satisfy 0 < near < far", r.Near, r.Far)
	}
	if r.Step < 0 || math.IsNaN(r.Step) {
		bad("render.step %g must not be negative", r.Step)
	}
	if r.Workers < 0 {
		bad("render.workers %d must not be negative", r.Workers)
	}

	if c.Camera.Eye == c.Camera.Center {
		bad("camera.eye and camera.center coincide")
	}
	if c.Camera.UpVec().Length() == 0 {
		bad("camera.up must be non-zero")
	}

	if c.CSG.MaxRetries <= 0 {
		bad("csg.max_retries %d must be positive", c.CSG.MaxRetries)
	}
	if c.Output.StrokeWidth <= 0 {
		bad("output.stroke_width %g must be positive", c.Output.StrokeWidth)
	}
	if c.Kernel.Cells <= 0 {
		bad("kernel.cells %d must be positive", c.Kernel.Cells)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		bad("log.level: %v", err)
	}
	return errors.Join(errs...)
}

func vec(a [3]float64) v3.Vec { return v3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func (c CameraConfig) EyeVec() v3.Vec    { return vec(c.Eye) }
func (c CameraConfig) CenterVec() v3.Vec { return vec(c.Center) }
func (c CameraConfig) UpVec() v3.Vec     { return vec(c.Up) }

// Style converts the output section to an output.Style.
func (c OutputConfig) Style() output.Style {
	return output.Style{Stroke: c.Stroke, StrokeWidth: c.StrokeWidth, Background: c.Background}
}

// SlogLevel parses the level name ("debug", "info", "warn", "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.Level))
	return l, err
}
