package uv

import "github.com/Faultbox/sureuv/pkg/math"

// Axis identifies one of the six box projection planes by the direction of its normal.
type Axis int

// Axis values double as indices into BoxMatrices.
const (
	AxisPosX Axis = iota
	AxisNegX
	AxisPosY
	AxisNegY
	AxisPosZ
	AxisNegZ
)

var axisNames = [...]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// String returns the signed axis name, e.g. "-Y".
func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return "?"
	}
	return axisNames[a]
}

// SelectAxis picks the box plane for a face normal. X wins only if |x| is strictly the
// largest component, Y only if |y| is; every other case, exact ties included, goes to Z.
// A non-negative dominant component selects the positive direction.
func SelectAxis(n math.Vec3) Axis {
	a := n.Abs()
	switch {
	case a.X > a.Y && a.X > a.Z:
		if n.X >= 0 {
			return AxisPosX
		}
		return AxisNegX
	case a.Y > a.X && a.Y > a.Z:
		if n.Y >= 0 {
			return AxisPosY
		}
		return AxisNegY
	default:
		if n.Z >= 0 {
			return AxisPosZ
		}
		return AxisNegZ
	}
}

// ProjectBox assigns every participating face to a box plane by its normal and maps each
// of its loops through that plane's matrix. The UV buffer is written back once, at the end;
// on error the mesh is left unchanged.
func ProjectBox(m MeshAccess, p BoxParams, scope Scope) (Result, error) {
	s, err := readMesh(m)
	if err != nil {
		return Result{}, err
	}

	matrices := BoxMatrices(p)
	out := s.output(scope)
	res := Result{Scope: scope}

	for f, face := range s.faces {
		if !s.participates(f, scope) {
			continue
		}
		axis := SelectAxis(s.normals[f])
		mat := matrices[axis]
		for _, l := range face {
			out[l] = mat.Apply(s.positions[s.loops[l]])
		}
		res.AxisFaces[axis]++
		res.Faces++
		res.Loops += len(face)
	}

	m.SetUVBuffer(out)
	return res, nil
}
