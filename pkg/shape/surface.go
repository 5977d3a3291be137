package shape

import (
	"math"
	"sort"
)

var surfaces = map[string]func(x, y float64) float64{
	"paraboloid": func(x, y float64) float64 { return x*x + y*y },
	"saddle":     func(x, y float64) float64 { return x*x - y*y },
	"ripple":     func(x, y float64) float64 { return math.Sin(math.Hypot(x, y)) },
	"egg-crate":  func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) },
	"sinxy":      func(x, y float64) float64 { return math.Sin(x * y) },
	"spike": func(x, y float64) float64 {
		return -1 / (x*x + y*y)
	},
}

// Surface returns the named height field for use with NewFunction.
func Surface(name string) (func(x, y float64) float64, bool) {
	f, ok := surfaces[name]
	return f, ok
}

// SurfaceNames lists the known surface names in sorted order.
func SurfaceNames() []string {
	names := make([]string, 0, len(surfaces))
	for name := range surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
