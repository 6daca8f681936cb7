package uv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sureuv/pkg/math"
)

func TestPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		mesh    func() *Mesh
		wantErr error
	}{
		{
			name: "no uv map",
			mesh: func() *Mesh {
				m := unitCube()
				m.UVs, m.HasUVMap = nil, false
				return m
			},
			wantErr: ErrNoUVMap,
		},
		{
			name:    "no faces",
			mesh:    func() *Mesh { return &Mesh{HasUVMap: true} },
			wantErr: ErrEmptyMesh,
		},
		{
			name: "missing normals",
			mesh: func() *Mesh {
				m := unitCube()
				m.Normals = m.Normals[:3]
				return m
			},
			wantErr: ErrInvalidMesh,
		},
		{
			name: "short selection",
			mesh: func() *Mesh {
				m := unitCube()
				m.Selection = []bool{true}
				return m
			},
			wantErr: ErrInvalidMesh,
		},
		{
			name: "short uv map",
			mesh: func() *Mesh {
				m := unitCube()
				m.UVs = m.UVs[:4]
				return m
			},
			wantErr: ErrInvalidMesh,
		},
		{
			name: "vertex out of range",
			mesh: func() *Mesh {
				m := unitCube()
				m.Loops[5] = 8
				return m
			},
			wantErr: ErrInvalidMesh,
		},
		{
			name: "loop out of range",
			mesh: func() *Mesh {
				m := unitCube()
				m.Faces[2] = append(m.Faces[2], 24)
				return m
			},
			wantErr: ErrInvalidMesh,
		},
	}

	ops := []Operation{
		BoxProjection{Params: DefaultBoxParams()},
		PlanarProjection{Params: DefaultPlanarParams(), Scope: ScopeSelected},
	}

	for _, tt := range tests {
		for _, op := range ops {
			t.Run(tt.name+"/"+op.Name(), func(t *testing.T) {
				m := tt.mesh()
				before := append([]math.Vec2(nil), m.UVs...)

				_, err := op.Apply(m)
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, m.UVs, "mesh must not change on error")
			})
		}
	}
}

func TestMeshAddFace(t *testing.T) {
	m := &Mesh{Positions: []math.Vec3{{}, {X: 1}, {Y: 1}}}
	f := m.AddFace(math.Vec3{Z: 1}, 0, 1, 2)

	assert.Equal(t, 0, f)
	assert.Equal(t, []int{0, 1, 2}, m.Loops)
	assert.Equal(t, [][]int{{0, 1, 2}}, m.Faces)
	assert.Nil(t, m.UVs)

	m.AddUVMap()
	assert.True(t, m.HasUVMap)
	assert.Len(t, m.UVs, 3)

	m.Selection = []bool{true}
	m.AddFace(math.Vec3{Z: -1}, 2, 1, 0)
	assert.Equal(t, []int{3, 4, 5}, m.Faces[1])
	assert.Len(t, m.UVs, 6)
	assert.Equal(t, []bool{true, false}, m.Selection)
}

func TestOperationDispatch(t *testing.T) {
	box := unitCube()
	res, err := BoxProjection{Params: DefaultBoxParams(), Scope: ScopeAll}.Apply(box)
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, res.Scope)
	assert.Equal(t, 24, res.Loops)

	direct := unitCube()
	_, err = ProjectBox(direct, DefaultBoxParams(), ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, direct.UVs, box.UVs)

	planar := unitCube()
	op := PlanarProjection{Params: DefaultPlanarParams(), Scope: ScopeAll}
	assert.Equal(t, "planar", op.Name())
	res, err = op.Apply(planar)
	require.NoError(t, err)
	assert.Equal(t, ReferenceAxis, res.Normal)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "all", ScopeAll.String())
	assert.Equal(t, "selected", ScopeSelected.String())
	assert.Equal(t, "unknown", Scope(7).String())
}
