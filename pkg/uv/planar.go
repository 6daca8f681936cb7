package uv

import "github.com/Faultbox/sureuv/pkg/math"

// ReferenceAxis is the direction the best-fit plane normal is rotated onto.
// It is also the fallback normal when no faces contribute.
var ReferenceAxis = math.Vec3{X: 0, Y: 0, Z: 1}

// AverageNormal sums the normals of the selected faces (all faces when the mesh has no
// selection mask) and returns the normalized result with the number of contributing faces.
// When nothing contributes, or the normals cancel out, it returns ReferenceAxis.
func AverageNormal(m MeshAccess) (math.Vec3, int) {
	normals := m.FaceNormals()
	selection := m.FaceSelection()

	var sum math.Vec3
	count := 0
	for f, n := range normals {
		if selection != nil && (f >= len(selection) || !selection[f]) {
			continue
		}
		sum = sum.Add(n)
		count++
	}

	avg := sum.Normalize()
	if count == 0 || avg.IsZero() {
		return ReferenceAxis, count
	}
	return avg, count
}

// PlaneRotation returns the rotation that turns a plane with the given normal into the XY plane.
func PlaneRotation(normal math.Vec3) math.Quat {
	return math.QuatRotationDifference(normal, ReferenceAxis)
}

// ProjectPlanar projects the participating faces onto the best-fit plane of the selection.
// Vertices are rotated so that the average normal points along +Z, then their X and Y go
// through PlanarMatrix. The normal is always averaged over the selection, while scope only
// decides which loops are written.
func ProjectPlanar(m MeshAccess, p PlanarParams, scope Scope) (Result, error) {
	s, err := readMesh(m)
	if err != nil {
		return Result{}, err
	}

	normal, _ := AverageNormal(m)
	rot := PlaneRotation(normal)
	mat := PlanarMatrix(p)
	out := s.output(scope)
	res := Result{Scope: scope, Normal: normal}

	for f, face := range s.faces {
		if !s.participates(f, scope) {
			continue
		}
		for _, l := range face {
			out[l] = mat.Apply(rot.Rotate(s.positions[s.loops[l]]))
		}
		res.Faces++
		res.Loops += len(face)
	}

	m.SetUVBuffer(out)
	return res, nil
}
