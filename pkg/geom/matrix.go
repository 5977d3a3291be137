package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Matrix is a row-major 4x4 transformation matrix. Positions are column
// vectors, so the translation lives in the last column.
type Matrix [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a translation by v.
func Translate(v v3.Vec) Matrix {
	return Matrix{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scale returns a non-uniform scale by v.
func Scale(v v3.Vec) Matrix {
	return Matrix{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// Rotate returns a rotation of a radians about axis v.
func Rotate(v v3.Vec, a float64) Matrix {
	v = v.Normalize()
	s, c := math.Sincos(a)
	m := 1 - c
	return Matrix{
		{m*v.X*v.X + c, m*v.X*v.Y + v.Z*s, m*v.Z*v.X - v.Y*s, 0},
		{m*v.X*v.Y - v.Z*s, m*v.Y*v.Y + c, m*v.Y*v.Z + v.X*s, 0},
		{m*v.Z*v.X + v.Y*s, m*v.Y*v.Z - v.X*s, m*v.Z*v.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// EulerDegrees returns the right-handed rotation by x, then y, then z
// degrees about the coordinate axes. Rotate turns the other way, so each
// angle is negated.
func EulerDegrees(x, y, z float64) Matrix {
	rx := Rotate(v3.Vec{X: 1}, -Radians(x))
	ry := Rotate(v3.Vec{Y: 1}, -Radians(y))
	rz := Rotate(v3.Vec{Z: 1}, -Radians(z))
	return rz.Mul(ry).Mul(rx)
}

// Frustum returns a perspective projection for the given clip planes.
func Frustum(l, r, b, t, n, f float64) Matrix {
	t1 := 2 * n
	t2 := r - l
	t3 := t - b
	t4 := f - n
	return Matrix{
		{t1 / t2, 0, (r + l) / t2, 0},
		{0, t1 / t3, (t + b) / t3, 0},
		{0, 0, (-f - n) / t4, (-t1 * f) / t4},
		{0, 0, -1, 0},
	}
}

// Orthographic returns a parallel projection for the given clip planes.
func Orthographic(l, r, b, t, n, f float64) Matrix {
	return Matrix{
		{2 / (r - l), 0, 0, -(r + l) / (r - l)},
		{0, 2 / (t - b), 0, -(t + b) / (t - b)},
		{0, 0, -2 / (f - n), -(f + n) / (f - n)},
		{0, 0, 0, 1},
	}
}

// Perspective returns a symmetric frustum with a vertical field of view of
// fovy degrees.
func Perspective(fovy, aspect, near, far float64) Matrix {
	ymax := near * math.Tan(fovy*math.Pi/360)
	xmax := ymax * aspect
	return Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

// LookAt returns the view matrix of a camera at eye looking at center.
func LookAt(eye, center, up v3.Vec) Matrix {
	up = up.Normalize()
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f).Normalize()
	m := Matrix{
		{s.X, u.X, -f.X, eye.X},
		{s.Y, u.Y, -f.Y, eye.Y},
		{s.Z, u.Z, -f.Z, eye.Z},
		{0, 0, 0, 1},
	}
	return m.Inverse()
}

// Translated applies a translation after m.
func (m Matrix) Translated(v v3.Vec) Matrix {
	return Translate(v).Mul(m)
}

// Scaled applies a scale after m.
func (m Matrix) Scaled(v v3.Vec) Matrix {
	return Scale(v).Mul(m)
}

// Rotated applies a rotation after m.
func (m Matrix) Rotated(v v3.Vec, a float64) Matrix {
	return Rotate(v, a).Mul(m)
}

// WithFrustum applies a frustum projection after m.
func (m Matrix) WithFrustum(l, r, b, t, n, f float64) Matrix {
	return Frustum(l, r, b, t, n, f).Mul(m)
}

// WithOrthographic applies an orthographic projection after m.
func (m Matrix) WithOrthographic(l, r, b, t, n, f float64) Matrix {
	return Orthographic(l, r, b, t, n, f).Mul(m)
}

// WithPerspective applies a perspective projection after m.
func (m Matrix) WithPerspective(fovy, aspect, near, far float64) Matrix {
	return Perspective(fovy, aspect, near, far).Mul(m)
}

// Mul returns the product m*b.
func (m Matrix) Mul(b Matrix) Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i][0]*b[0][j] + m[i][1]*b[1][j] + m[i][2]*b[2][j] + m[i][3]*b[3][j]
		}
	}
	return out
}

// MulPosition transforms a point, ignoring the projective row.
func (m Matrix) MulPosition(b v3.Vec) v3.Vec {
	return v3.Vec{
		X: m[0][0]*b.X + m[0][1]*b.Y + m[0][2]*b.Z + m[0][3],
		Y: m[1][0]*b.X + m[1][1]*b.Y + m[1][2]*b.Z + m[1][3],
		Z: m[2][0]*b.X + m[2][1]*b.Y + m[2][2]*b.Z + m[2][3],
	}
}

// MulPositionW transforms a point and divides by the resulting w.
func (m Matrix) MulPositionW(b v3.Vec) v3.Vec {
	v := m.MulPosition(b)
	w := m[3][0]*b.X + m[3][1]*b.Y + m[3][2]*b.Z + m[3][3]
	return v.DivScalar(w)
}

// MulDirection transforms a direction and normalizes it.
func (m Matrix) MulDirection(b v3.Vec) v3.Vec {
	v := v3.Vec{
		X: m[0][0]*b.X + m[0][1]*b.Y + m[0][2]*b.Z,
		Y: m[1][0]*b.X + m[1][1]*b.Y + m[1][2]*b.Z,
		Z: m[2][0]*b.X + m[2][1]*b.Y + m[2][2]*b.Z,
	}
	return v.Normalize()
}

// MulVector transforms a direction without normalizing it, so ray
// parameters keep their meaning across the transform.
func (m Matrix) MulVector(b v3.Vec) v3.Vec {
	return v3.Vec{
		X: m[0][0]*b.X + m[0][1]*b.Y + m[0][2]*b.Z,
		Y: m[1][0]*b.X + m[1][1]*b.Y + m[1][2]*b.Z,
		Z: m[2][0]*b.X + m[2][1]*b.Y + m[2][2]*b.Z,
	}
}

// MulRay transforms both the origin and direction of r.
func (m Matrix) MulRay(r Ray) Ray {
	return Ray{Origin: m.MulPosition(r.Origin), Direction: m.MulDirection(r.Direction)}
}

// MulBox returns the axis-aligned box enclosing the transformed box.
func (m Matrix) MulBox(box Box) Box {
	r := v3.Vec{X: m[0][0], Y: m[1][0], Z: m[2][0]}
	u := v3.Vec{X: m[0][1], Y: m[1][1], Z: m[2][1]}
	b := v3.Vec{X: m[0][2], Y: m[1][2], Z: m[2][2]}
	t := v3.Vec{X: m[0][3], Y: m[1][3], Z: m[2][3]}
	xa := r.MulScalar(box.Min.X)
	xb := r.MulScalar(box.Max.X)
	ya := u.MulScalar(box.Min.Y)
	yb := u.MulScalar(box.Max.Y)
	za := b.MulScalar(box.Min.Z)
	zb := b.MulScalar(box.Max.Z)
	xa, xb = xa.Min(xb), xa.Max(xb)
	ya, yb = ya.Min(yb), ya.Max(yb)
	za, zb = za.Min(zb), za.Max(zb)
	return Box{
		Min: xa.Add(ya).Add(za).Add(t),
		Max: xb.Add(yb).Add(zb).Add(t),
	}
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// minor returns the determinant of m with row r and column c removed.
func (m Matrix) minor(r, c int) float64 {
	var a [3][3]float64
	ri := 0
	for i := 0; i < 4; i++ {
		if i == r {
			continue
		}
		ci := 0
		for j := 0; j < 4; j++ {
			if j == c {
				continue
			}
			a[ri][ci] = m[i][j]
			ci++
		}
		ri++
	}
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

func (m Matrix) cofactor(r, c int) float64 {
	if (r+c)%2 == 1 {
		return -m.minor(r, c)
	}
	return m.minor(r, c)
}

// Determinant returns det(m).
func (m Matrix) Determinant() float64 {
	var d float64
	for j := 0; j < 4; j++ {
		d += m[0][j] * m.cofactor(0, j)
	}
	return d
}

// Inverse returns the inverse of m. A singular matrix yields non-finite
// entries.
func (m Matrix) Inverse() Matrix {
	d := m.Determinant()
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m.cofactor(j, i) / d
		}
	}
	return out
}
