package uv

import "github.com/Faultbox/sureuv/pkg/math"

// Result summarizes a projection run.
type Result struct {
	Scope Scope
	Faces int // faces written
	Loops int // loops written
	// AxisFaces counts faces per box plane, indexed by Axis. Box projection only.
	AxisFaces [6]int
	// Normal is the best-fit plane normal. Planar projection only.
	Normal math.Vec3
}

// Operation is one UV mapping action on a mesh.
type Operation interface {
	Name() string
	Apply(m MeshAccess) (Result, error)
}

// BoxProjection maps faces with six-plane box projection.
type BoxProjection struct {
	Params BoxParams
	Scope  Scope
}

// Name implements Operation.
func (BoxProjection) Name() string { return "box" }

// Apply implements Operation.
func (op BoxProjection) Apply(m MeshAccess) (Result, error) {
	return ProjectBox(m, op.Params, op.Scope)
}

// PlanarProjection maps faces onto the best-fit plane of the selection.
type PlanarProjection struct {
	Params PlanarParams
	Scope  Scope
}

// Name implements Operation.
func (PlanarProjection) Name() string { return "planar" }

// Apply implements Operation.
func (op PlanarProjection) Apply(m MeshAccess) (Result, error) {
	return ProjectPlanar(m, op.Params, op.Scope)
}
