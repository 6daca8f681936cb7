// Package meshstore exposes OBJ meshes to the UV projectors and stores the results back.
package meshstore

import (
	"strings"

	"github.com/Faultbox/sureuv/pkg/formats"
	"github.com/Faultbox/sureuv/pkg/math"
	"github.com/Faultbox/sureuv/pkg/uv"
)

// Store pairs an OBJ with the uv.Mesh view the projectors operate on.
type Store struct {
	OBJ  *formats.OBJ
	Mesh *uv.Mesh
	// CreatedUVMap is set when the OBJ had no texture coordinates and an empty UV map was added.
	CreatedUVMap bool
	// Selected counts the faces picked by the selection groups.
	Selected int
}

// Open builds the mesh view of obj. Faces whose group or object name appears in
// selectGroups are selected; with no groups the mesh carries no selection mask.
func Open(obj *formats.OBJ, selectGroups []string) *Store {
	m := &uv.Mesh{
		Positions: obj.Positions,
		Loops:     make([]int, 0, obj.LoopCount()),
		Faces:     make([][]int, len(obj.Faces)),
		Normals:   make([]math.Vec3, len(obj.Faces)),
	}
	s := &Store{OBJ: obj, Mesh: m}

	hasUVs := false
	uvs := make([]math.Vec2, 0, obj.LoopCount())
	for i := range obj.Faces {
		face := &obj.Faces[i]
		loops := make([]int, len(face.Vertices))
		for j, vid := range face.Vertices {
			loops[j] = len(m.Loops)
			m.Loops = append(m.Loops, vid)

			var t math.Vec2
			if j < len(face.TexCoords) && face.TexCoords[j] >= 0 {
				t = obj.TexCoords[face.TexCoords[j]]
				hasUVs = true
			}
			uvs = append(uvs, t)
		}
		m.Faces[i] = loops
		m.Normals[i] = FaceNormal(obj.Positions, face.Vertices)
	}

	if hasUVs {
		m.SetUVBuffer(uvs)
	} else {
		m.AddUVMap()
		s.CreatedUVMap = true
	}

	if len(selectGroups) > 0 {
		m.Selection = make([]bool, len(obj.Faces))
		for i := range obj.Faces {
			if inGroups(&obj.Faces[i], selectGroups) {
				m.Selection[i] = true
				s.Selected++
			}
		}
	}

	return s
}

// Commit writes the mesh UVs into the OBJ. Every corner gets a texture coordinate;
// identical coordinates share one "vt" entry.
func (s *Store) Commit() {
	obj := s.OBJ
	index := make(map[math.Vec2]int)
	texCoords := make([]math.Vec2, 0, len(s.Mesh.UVs))

	for i := range obj.Faces {
		face := &obj.Faces[i]
		vts := make([]int, len(face.Vertices))
		for j, l := range s.Mesh.Faces[i] {
			t := s.Mesh.UVs[l]
			idx, ok := index[t]
			if !ok {
				idx = len(texCoords)
				index[t] = idx
				texCoords = append(texCoords, t)
			}
			vts[j] = idx
		}
		face.TexCoords = vts
	}

	obj.TexCoords = texCoords
}

// FaceNormal returns the unit normal of a polygon using Newell's method,
// which tolerates non-planar and concave faces. Degenerate faces get a zero normal.
func FaceNormal(positions []math.Vec3, vertexIDs []int) math.Vec3 {
	var n math.Vec3
	for i, vid := range vertexIDs {
		cur := positions[vid]
		next := positions[vertexIDs[(i+1)%len(vertexIDs)]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

func inGroups(face *formats.OBJFace, groups []string) bool {
	names := strings.Fields(face.Group)
	if face.Object != "" {
		names = append(names, face.Object)
	}
	for _, want := range groups {
		for _, name := range names {
			if name == want {
				return true
			}
		}
	}
	return false
}
