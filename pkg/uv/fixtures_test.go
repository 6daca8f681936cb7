package uv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/sureuv/pkg/math"
)

const uvDelta = 1e-5

// unitCube returns a cube spanning [0,1]^3 with one quad per side and a zeroed UV map.
// Face order: -Z, +Z, -Y, +X, +Y, -X.
func unitCube() *Mesh {
	m := &Mesh{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0}, // 0
			{X: 1, Y: 0, Z: 0}, // 1
			{X: 1, Y: 1, Z: 0}, // 2
			{X: 0, Y: 1, Z: 0}, // 3
			{X: 0, Y: 0, Z: 1}, // 4
			{X: 1, Y: 0, Z: 1}, // 5
			{X: 1, Y: 1, Z: 1}, // 6
			{X: 0, Y: 1, Z: 1}, // 7
		},
		HasUVMap: true,
	}
	m.AddFace(math.Vec3{Z: -1}, 0, 3, 2, 1)
	m.AddFace(math.Vec3{Z: 1}, 4, 5, 6, 7)
	m.AddFace(math.Vec3{Y: -1}, 0, 1, 5, 4)
	m.AddFace(math.Vec3{X: 1}, 1, 2, 6, 5)
	m.AddFace(math.Vec3{Y: 1}, 2, 3, 7, 6)
	m.AddFace(math.Vec3{X: -1}, 3, 0, 4, 7)
	return m
}

// quad returns a single-face mesh over four points with the given normal.
func quad(normal math.Vec3, pts ...math.Vec3) *Mesh {
	m := &Mesh{Positions: pts, HasUVMap: true}
	m.AddFace(normal, 0, 1, 2, 3)
	return m
}

// faceUVs returns the UVs of face f's loops in loop order.
func faceUVs(m *Mesh, f int) []math.Vec2 {
	uvs := make([]math.Vec2, len(m.Faces[f]))
	for i, l := range m.Faces[f] {
		uvs[i] = m.UVs[l]
	}
	return uvs
}

func assertUVs(t *testing.T, want, got []math.Vec2) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, uvDelta, "u of loop %d", i)
		assert.InDelta(t, want[i].Y, got[i].Y, uvDelta, "v of loop %d", i)
	}
}

func fill(uvs []math.Vec2, v math.Vec2) {
	for i := range uvs {
		uvs[i] = v
	}
}
