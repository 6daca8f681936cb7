// Package uv computes per-loop texture coordinates for polygon meshes using
// box (six-plane) and best planar (single-plane) projection.
package uv

import "github.com/Faultbox/sureuv/pkg/math"

// BoxParams holds the user parameters for box projection.
type BoxParams struct {
	// Size is the world-space extent mapped onto one texture repeat. Zero means 1.
	Size float32
	// Aspect is the width/height ratio of the target texture.
	Aspect float32
	// Rotation is the XYZ rotation in degrees. Each projection plane uses the
	// angle of the axis perpendicular to it.
	Rotation math.Vec3
	// Offset shifts the projected coordinates. It follows the rotation but is not scaled by Size.
	Offset math.Vec3
}

// PlanarParams holds the user parameters for best planar projection.
type PlanarParams struct {
	Size      float32
	Aspect    float32
	ZRotation float32 // degrees, about the best-fit plane normal
	Offset    math.Vec2
}

// DefaultBoxParams returns unit size, square aspect and no rotation or offset.
func DefaultBoxParams() BoxParams {
	return BoxParams{Size: 1, Aspect: 1}
}

// DefaultPlanarParams returns unit size, square aspect and no rotation or offset.
func DefaultPlanarParams() PlanarParams {
	return PlanarParams{Size: 1, Aspect: 1}
}

// Scope selects which faces an operation writes UVs for.
type Scope int

const (
	// ScopeAll projects every face and replaces the whole UV buffer.
	ScopeAll Scope = iota
	// ScopeSelected projects only selected faces and keeps the UVs of all other loops.
	ScopeSelected
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeSelected:
		return "selected"
	default:
		return "unknown"
	}
}
