package geom

// Axis names a coordinate axis. AxisNone marks a leaf in the spatial index.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}
