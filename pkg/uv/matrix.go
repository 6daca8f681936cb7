package uv

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sureuv/pkg/math"
)

const degToRad = math32.Pi / 180

// scaleFactor converts a projection size into a UV scale. A zero size maps to 1.
func scaleFactor(size float32) float32 {
	if size != 0 {
		return 1 / size
	}
	return 1
}

// BoxMatrices returns the six projection matrices for box mapping, indexed by Axis:
// +X, -X, +Y, -Y, +Z, -Z. Each one projects onto the plane perpendicular to its axis,
// rotated by that axis' angle from p.Rotation and shifted by p.Offset.
// The aspect scales only the linear part of the V row, never its translation.
func BoxMatrices(p BoxParams) [6]math.Mat2x4 {
	sc := scaleFactor(p.Size)
	a := p.Aspect
	ofx, ofy, ofz := p.Offset.X, p.Offset.Y, p.Offset.Z

	srx, crx := math32.Sincos(p.Rotation.X * degToRad)
	sry, cry := math32.Sincos(p.Rotation.Y * degToRad)
	srz, crz := math32.Sincos(p.Rotation.Z * degToRad)

	return [6]math.Mat2x4{
		AxisPosX: {
			{0, crx * sc, srx * sc, -ofy*crx - ofz*srx},
			{0, -a * srx * sc, a * crx * sc, ofy*srx - ofz*crx},
		},
		AxisNegX: {
			{0, -crx * sc, srx * sc, ofy*crx - ofz*srx},
			{0, a * srx * sc, a * crx * sc, -ofy*srx - ofz*crx},
		},
		AxisPosY: {
			{-cry * sc, 0, sry * sc, ofx*cry - ofz*sry},
			{a * sry * sc, 0, a * cry * sc, -ofx*sry - ofz*cry},
		},
		AxisNegY: {
			{cry * sc, 0, sry * sc, -ofx*cry - ofz*sry},
			{-a * sry * sc, 0, a * cry * sc, ofx*sry - ofz*cry},
		},
		AxisPosZ: {
			{crz * sc, srz * sc, 0, -ofx*crz - ofy*srz},
			{-a * srz * sc, a * crz * sc, 0, ofx*srz - ofy*crz},
		},
		AxisNegZ: {
			{-crz * sc, -srz * sc, 0, ofx*crz - ofy*srz},
			{-a * srz * sc, a * crz * sc, 0, -ofx*srz - ofy*crz},
		},
	}
}

// PlanarMatrix returns the in-plane transform applied after a point has been rotated
// into the best-fit plane's frame. The Z column is zero, so the rotated depth is ignored.
func PlanarMatrix(p PlanarParams) math.Mat2x4 {
	sc := scaleFactor(p.Size)
	s, c := math32.Sincos(p.ZRotation * degToRad)

	return math.Mat2x4{
		{sc * c, -sc * s, 0, p.Offset.X},
		{sc * p.Aspect * s, sc * p.Aspect * c, 0, p.Offset.Y},
	}
}
