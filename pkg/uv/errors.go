package uv

import "errors"

// Precondition errors. An operation that returns one of these has not touched the mesh.
var (
	ErrNoUVMap     = errors.New("mesh has no UV map")
	ErrEmptyMesh   = errors.New("mesh has no faces")
	ErrInvalidMesh = errors.New("invalid mesh")
)
