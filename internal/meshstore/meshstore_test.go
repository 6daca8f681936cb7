package meshstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sureuv/pkg/formats"
	"github.com/Faultbox/sureuv/pkg/math"
	"github.com/Faultbox/sureuv/pkg/uv"
)

const planeOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 1 0 1
v 1 1 1
o Plane
g floor
f 1 2 3 4
g wall trim
f 2 3 6 5
`

const texturedOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
vt 0.5 0.5
vt 0.25 0.75
f 1/1 2/2 3/1
f 3 2 1
`

func parse(t *testing.T, data string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(data))
	require.NoError(t, err)
	return obj
}

func TestFaceNormal(t *testing.T) {
	positions := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: 0, Y: 2, Z: 0}}
	assert.Equal(t, math.Vec3{Z: 1}, FaceNormal(positions, []int{0, 1, 2, 3}))
	assert.Equal(t, math.Vec3{Z: -1}, FaceNormal(positions, []int{3, 2, 1, 0}))

	// collinear points have no normal
	line := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}
	assert.True(t, FaceNormal(line, []int{0, 1, 2}).IsZero())
}

func TestOpenCreatesUVMap(t *testing.T) {
	s := Open(parse(t, planeOBJ), nil)

	assert.True(t, s.CreatedUVMap)
	uvs, ok := s.Mesh.UVBuffer()
	require.True(t, ok)
	assert.Len(t, uvs, 8)
	assert.Nil(t, s.Mesh.FaceSelection())

	assert.Equal(t, []int{0, 1, 2, 3, 1, 2, 5, 4}, s.Mesh.Loops)
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}, s.Mesh.Faces)
	assert.Equal(t, math.Vec3{Z: 1}, s.Mesh.Normals[0])
	assert.Equal(t, math.Vec3{X: 1}, s.Mesh.Normals[1])
}

func TestOpenSelectsByGroup(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		want   []bool
	}{
		{"single group", []string{"floor"}, []bool{true, false}},
		{"second of several group names", []string{"trim"}, []bool{false, true}},
		{"object name", []string{"Plane"}, []bool{true, true}},
		{"no match", []string{"roof"}, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(parse(t, planeOBJ), tt.groups)
			assert.Equal(t, tt.want, s.Mesh.Selection)

			count := 0
			for _, sel := range tt.want {
				if sel {
					count++
				}
			}
			assert.Equal(t, count, s.Selected)
		})
	}
}

func TestOpenKeepsExistingUVs(t *testing.T) {
	s := Open(parse(t, texturedOBJ), nil)

	assert.False(t, s.CreatedUVMap)
	assert.Equal(t, []math.Vec2{
		{X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}, {X: 0.5, Y: 0.5},
		{}, {}, {},
	}, s.Mesh.UVs)
}

func TestCommitDeduplicatesTexCoords(t *testing.T) {
	obj := parse(t, planeOBJ)
	s := Open(obj, nil)

	_, err := uv.ProjectBox(s.Mesh, uv.DefaultBoxParams(), uv.ScopeAll)
	require.NoError(t, err)
	s.Commit()

	// floor (+Z) maps to (x, y); wall (+X) maps to (y, z)
	assert.Equal(t, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, obj.TexCoords)
	assert.Equal(t, []int{0, 1, 2, 3}, obj.Faces[0].TexCoords)
	assert.Equal(t, []int{0, 1, 2, 3}, obj.Faces[1].TexCoords)

	for i := range obj.Faces {
		for j, vt := range obj.Faces[i].TexCoords {
			assert.Equal(t, s.Mesh.UVs[s.Mesh.Faces[i][j]], obj.TexCoords[vt])
		}
	}
}

func TestCommitSelectedKeepsOldUVs(t *testing.T) {
	obj := parse(t, texturedOBJ)
	s := Open(obj, nil)
	s.Mesh.Selection = []bool{false, true}

	_, err := uv.ProjectBox(s.Mesh, uv.DefaultBoxParams(), uv.ScopeSelected)
	require.NoError(t, err)
	s.Commit()

	f0 := obj.Faces[0]
	assert.Equal(t, math.Vec2{X: 0.5, Y: 0.5}, obj.TexCoords[f0.TexCoords[0]])
	assert.Equal(t, math.Vec2{X: 0.25, Y: 0.75}, obj.TexCoords[f0.TexCoords[1]])

	// second face winds clockwise, so its normal is -Z: (-x, y)
	f1 := obj.Faces[1]
	assert.Equal(t, math.Vec2{X: -1, Y: 1}, obj.TexCoords[f1.TexCoords[0]])
	assert.Equal(t, math.Vec2{X: -1, Y: 0}, obj.TexCoords[f1.TexCoords[1]])
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, obj.TexCoords[f1.TexCoords[2]])
}
