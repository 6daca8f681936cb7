package math

// Mat2x4 is the top two rows of an affine 3D → 2D transform, stored row-major.
// Applied to the homogeneous point [x y z 1] it yields a 2D coordinate:
//
//	u = m[0][0]*x + m[0][1]*y + m[0][2]*z + m[0][3]
//	v = m[1][0]*x + m[1][1]*y + m[1][2]*z + m[1][3]
type Mat2x4 [2][4]float32

// Apply transforms a point, treating it as [p.X p.Y p.Z 1].
func (m Mat2x4) Apply(p Vec3) Vec2 {
	return Vec2{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
	}
}
