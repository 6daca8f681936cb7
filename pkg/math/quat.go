package math

import "github.com/chewxy/math32"

// parallelEpsilon is the largest |from x to| of two unit directions that still counts as
// exactly parallel or opposite. Smaller angles than this are below float32 resolution.
const parallelEpsilon = 1e-7

// degenerateAxis bounds the fallback half-turn axis away from zero length.
const degenerateAxis = 1e-6

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// QuatRotationDifference returns the shortest rotation that turns direction from onto direction to.
// Neither argument needs to be normalized. A zero-length argument yields the identity.
// When the directions are opposite, the rotation is a half turn about an axis perpendicular to from.
func QuatRotationDifference(from, to Vec3) Quat {
	a := from.Normalize()
	b := to.Normalize()
	if a.IsZero() || b.IsZero() {
		return QuatIdentity()
	}

	axis := a.Cross(b)
	sin := axis.Length()
	cos := a.Dot(b)
	if sin <= parallelEpsilon {
		if cos > 0 {
			return QuatIdentity()
		}
		axis = a.Cross(Vec3{X: 1})
		if axis.Length() < degenerateAxis {
			axis = a.Cross(Vec3{Y: 1})
		}
		return QuatFromAxisAngle(axis.Normalize(), math32.Pi).Normalize()
	}

	return QuatFromAxisAngle(axis.Scale(1/sin), math32.Atan2(sin, cos)).Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Rotate applies the rotation to a vector. q must be a unit quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + w*t + u x t, with u = (x, y, z) and t = 2 * (u x v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
