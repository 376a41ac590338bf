package cubesim

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Vec3 is an integer grid coordinate or axis direction.
type Vec3 [3]int

// Round snaps a float position to the nearest grid coordinate.
func Round(p [3]float64) Vec3 {
	return Vec3{int(math.Round(p[0])), int(math.Round(p[1])), int(math.Round(p[2]))}
}

// Float returns v as a float position.
func (v Vec3) Float() [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Mat3 is an exact rotation matrix with entries in {-1, 0, 1}.
// Quarter turns compose without rounding error.
type Mat3 [3][3]int

// Identity is the orientation of every cubie in the canonical layout.
var Identity = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	var r Vec3
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return r
}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// Transpose returns the inverse rotation.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// snapRotation converts a unit quaternion to the nearest exact rotation
// matrix. Quarter-turn compositions land on entries in {-1, 0, 1}, so
// rounding removes floating point residue without changing the rotation.
func snapRotation(q quat.Number) Mat3 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	f := [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
	var m Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = int(math.Round(f[i][j]))
		}
	}
	return m
}

// Quaternion converts m to a unit quaternion with a non-negative real part.
func (m Mat3) Quaternion() quat.Number {
	m00, m11, m22 := float64(m[0][0]), float64(m[1][1]), float64(m[2][2])
	var q quat.Number

	switch tr := m00 + m11 + m22; {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{
			Real: s / 4,
			Imag: float64(m[2][1]-m[1][2]) / s,
			Jmag: float64(m[0][2]-m[2][0]) / s,
			Kmag: float64(m[1][0]-m[0][1]) / s,
		}
	case m00 >= m11 && m00 >= m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = quat.Number{
			Real: float64(m[2][1]-m[1][2]) / s,
			Imag: s / 4,
			Jmag: float64(m[0][1]+m[1][0]) / s,
			Kmag: float64(m[0][2]+m[2][0]) / s,
		}
	case m11 >= m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = quat.Number{
			Real: float64(m[0][2]-m[2][0]) / s,
			Imag: float64(m[0][1]+m[1][0]) / s,
			Jmag: s / 4,
			Kmag: float64(m[1][2]+m[2][1]) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = quat.Number{
			Real: float64(m[1][0]-m[0][1]) / s,
			Imag: float64(m[0][2]+m[2][0]) / s,
			Jmag: float64(m[1][2]+m[2][1]) / s,
			Kmag: s / 4,
		}
	}

	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// axisAngle returns the unit quaternion rotating by angle radians about axis.
func axisAngle(axis Axis, angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	q := quat.Number{Real: c}
	switch axis {
	case AxisX:
		q.Imag = s
	case AxisY:
		q.Jmag = s
	case AxisZ:
		q.Kmag = s
	}
	return q
}

// rotatePoint rotates p by the unit quaternion q.
func rotatePoint(q quat.Number, p [3]float64) [3]float64 {
	v := quat.Number{Imag: p[0], Jmag: p[1], Kmag: p[2]}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}
