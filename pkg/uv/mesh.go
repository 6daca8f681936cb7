package uv

import (
	"fmt"

	"github.com/Faultbox/sureuv/pkg/math"
)

// MeshAccess is the view of a mesh that the projectors read from and write to.
type MeshAccess interface {
	// VertexPositions returns one position per vertex id.
	VertexPositions() []math.Vec3
	// LoopVertexIndices returns the vertex id of every loop.
	LoopVertexIndices() []int
	// FaceLoops returns the loop ids of every face.
	FaceLoops() [][]int
	// FaceNormals returns one normal per face.
	FaceNormals() []math.Vec3
	// FaceSelection returns one flag per face, or nil when every face counts as selected.
	FaceSelection() []bool
	// UVBuffer returns the active UV map, one coordinate per loop.
	// ok is false when the mesh has no UV map to write to.
	UVBuffer() (uvs []math.Vec2, ok bool)
	// SetUVBuffer replaces the active UV map.
	SetUVBuffer(uvs []math.Vec2)
}

// Mesh is an in-memory MeshAccess.
type Mesh struct {
	Positions []math.Vec3
	Loops     []int   // vertex id per loop
	Faces     [][]int // loop ids per face
	Normals   []math.Vec3
	Selection []bool // nil means all selected
	UVs       []math.Vec2
	HasUVMap  bool
}

// VertexPositions implements MeshAccess.
func (m *Mesh) VertexPositions() []math.Vec3 { return m.Positions }

// LoopVertexIndices implements MeshAccess.
func (m *Mesh) LoopVertexIndices() []int { return m.Loops }

// FaceLoops implements MeshAccess.
func (m *Mesh) FaceLoops() [][]int { return m.Faces }

// FaceNormals implements MeshAccess.
func (m *Mesh) FaceNormals() []math.Vec3 { return m.Normals }

// FaceSelection implements MeshAccess.
func (m *Mesh) FaceSelection() []bool { return m.Selection }

// UVBuffer implements MeshAccess.
func (m *Mesh) UVBuffer() ([]math.Vec2, bool) { return m.UVs, m.HasUVMap }

// SetUVBuffer implements MeshAccess.
func (m *Mesh) SetUVBuffer(uvs []math.Vec2) {
	m.UVs = uvs
	m.HasUVMap = true
}

// AddUVMap creates a zeroed UV map when the mesh has none.
func (m *Mesh) AddUVMap() {
	if m.HasUVMap {
		return
	}
	m.UVs = make([]math.Vec2, len(m.Loops))
	m.HasUVMap = true
}

// AddFace appends a face over the given vertex ids, creating one loop per vertex.
// It returns the new face index. The face normal is appended as given.
func (m *Mesh) AddFace(normal math.Vec3, vertexIDs ...int) int {
	loops := make([]int, len(vertexIDs))
	for i, vid := range vertexIDs {
		loops[i] = len(m.Loops)
		m.Loops = append(m.Loops, vid)
	}
	m.Faces = append(m.Faces, loops)
	m.Normals = append(m.Normals, normal)
	if m.HasUVMap {
		m.UVs = append(m.UVs, make([]math.Vec2, len(vertexIDs))...)
	}
	if m.Selection != nil {
		m.Selection = append(m.Selection, false)
	}
	return len(m.Faces) - 1
}

// snapshot holds the mesh arrays read and validated at the start of an operation.
type snapshot struct {
	positions []math.Vec3
	loops     []int
	faces     [][]int
	normals   []math.Vec3
	selection []bool
	uvs       []math.Vec2
}

// selected reports whether face f is selected. A nil mask selects everything.
func (s *snapshot) selected(f int) bool {
	return s.selection == nil || s.selection[f]
}

// participates reports whether face f is written under the given scope.
func (s *snapshot) participates(f int, scope Scope) bool {
	return scope == ScopeAll || s.selected(f)
}

// output returns the buffer an operation writes into: a fresh one for ScopeAll,
// a copy of the existing UVs otherwise.
func (s *snapshot) output(scope Scope) []math.Vec2 {
	out := make([]math.Vec2, len(s.loops))
	if scope == ScopeSelected {
		copy(out, s.uvs)
	}
	return out
}

// readMesh reads every array from m and checks the preconditions shared by all projectors.
func readMesh(m MeshAccess) (*snapshot, error) {
	uvs, ok := m.UVBuffer()
	if !ok {
		return nil, ErrNoUVMap
	}

	s := &snapshot{
		positions: m.VertexPositions(),
		loops:     m.LoopVertexIndices(),
		faces:     m.FaceLoops(),
		normals:   m.FaceNormals(),
		selection: m.FaceSelection(),
		uvs:       uvs,
	}

	if len(s.faces) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(s.normals) != len(s.faces) {
		return nil, fmt.Errorf("%w: %d normals for %d faces", ErrInvalidMesh, len(s.normals), len(s.faces))
	}
	if s.selection != nil && len(s.selection) != len(s.faces) {
		return nil, fmt.Errorf("%w: %d selection flags for %d faces", ErrInvalidMesh, len(s.selection), len(s.faces))
	}
	if len(s.uvs) != len(s.loops) {
		return nil, fmt.Errorf("%w: UV map has %d entries for %d loops", ErrInvalidMesh, len(s.uvs), len(s.loops))
	}
	for l, vid := range s.loops {
		if vid < 0 || vid >= len(s.positions) {
			return nil, fmt.Errorf("%w: loop %d references vertex %d of %d", ErrInvalidMesh, l, vid, len(s.positions))
		}
	}
	for f, face := range s.faces {
		for _, l := range face {
			if l < 0 || l >= len(s.loops) {
				return nil, fmt.Errorf("%w: face %d references loop %d of %d", ErrInvalidMesh, f, l, len(s.loops))
			}
		}
	}

	return s, nil
}
