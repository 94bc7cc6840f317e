package model

import "math"

const (
	epsilon = 1e-9

	// AngleTolerance is the angular distance (degrees) below which two
	// orientations are treated as equal.
	AngleTolerance = 1e-4
)

// Quaternion is a unit rotation quaternion.
// Yaw rotates about +Y; an unrotated actor faces +Z.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity is the zero rotation.
var Identity = Quaternion{W: 1}

// AxisAngle returns the rotation of deg degrees about axis.
// A degenerate axis yields Identity.
func AxisAngle(axis Vector3, deg float64) Quaternion {
	n, ok := axis.Normalized()
	if !ok {
		return Identity
	}
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return Quaternion{W: math.Cos(half), X: n.X * s, Y: n.Y * s, Z: n.Z * s}
}

// Yaw returns a rotation of deg degrees about the up axis.
func Yaw(deg float64) Quaternion {
	return AxisAngle(Vector3{Y: 1}, deg)
}

// LookRotationFlat returns the yaw-only rotation that faces dir after
// projecting it onto the horizontal plane.
// ok is false when the projection has no length (dir is vertical or zero).
func LookRotationFlat(dir Vector3) (Quaternion, bool) {
	n, ok := dir.Flatten().Normalized()
	if !ok {
		return Identity, false
	}
	return Yaw(math.Atan2(n.X, n.Z) * 180 / math.Pi), true
}

// Mul returns the composition q * r (r applied first).
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the inverse of a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Dot returns the 4D dot product.
func (q Quaternion) Dot(r Quaternion) float64 {
	return q.W*r.W + q.X*r.X + q.Y*r.Y + q.Z*r.Z
}

// Normalized returns q scaled to unit length, or Identity if q is zero.
func (q Quaternion) Normalized() Quaternion {
	l := math.Sqrt(q.Dot(q))
	if l < epsilon {
		return Identity
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Rotate applies q to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Heading returns the yaw of q in degrees, in (-180, 180].
func (q Quaternion) Heading() float64 {
	f := q.Rotate(Forward)
	return math.Atan2(f.X, f.Z) * 180 / math.Pi
}

// Angle returns the angular distance between a and b in degrees, in [0, 180].
func Angle(a, b Quaternion) float64 {
	rel := a.Conjugate().Mul(b)
	v := math.Sqrt(rel.X*rel.X + rel.Y*rel.Y + rel.Z*rel.Z)
	return 2 * math.Atan2(v, math.Abs(rel.W)) * 180 / math.Pi
}

// ApproxEqual reports whether q and r describe the same orientation.
func (q Quaternion) ApproxEqual(r Quaternion) bool {
	return Angle(q, r) < AngleTolerance
}

// Slerp interpolates along the shortest arc from a to b; t is clamped to [0, 1].
func Slerp(a, b Quaternion, t float64) Quaternion {
	t = math.Max(0, math.Min(1, t))

	d := a.Dot(b)
	if d < 0 {
		b = Quaternion{W: -b.W, X: -b.X, Y: -b.Y, Z: -b.Z}
		d = -d
	}

	if d > 1-epsilon {
		return Quaternion{
			W: a.W + (b.W-a.W)*t,
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
		}.Normalized()
	}

	theta := math.Acos(d)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quaternion{
		W: wa*a.W + wb*b.W,
		X: wa*a.X + wb*b.X,
		Y: wa*a.Y + wb*b.Y,
		Z: wa*a.Z + wb*b.Z,
	}.Normalized()
}

// RotateTowards rotates from toward to by at most maxDeg degrees.
// It returns to exactly once the remaining distance is within maxDeg, so
// the result never passes the target.
func RotateTowards(from, to Quaternion, maxDeg float64) Quaternion {
	angle := Angle(from, to)
	if angle <= maxDeg+AngleTolerance {
		return to
	}
	if maxDeg <= 0 {
		return from
	}
	return Slerp(from, to, maxDeg/angle)
}
