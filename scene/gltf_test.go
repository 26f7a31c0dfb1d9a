package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/akmonengine/chomp/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "maze", "nodes": [0, 2]}],
  "nodes": [
    {"name": "Stars", "translation": [0, 1, 0], "children": [1]},
    {"name": "Star.1", "translation": [4, 0, 0], "scale": [2, 2, 2]},
    {"name": "Wall", "matrix": [1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 5, 0, -20, 1]}
  ]
}`

func TestImportGLTF(t *testing.T) {
	root, err := ImportGLTF(strings.NewReader(testGLTF))
	require.NoError(t, err)

	assert.Equal(t, "maze", root.Name)
	require.Len(t, root.Children(), 2)

	stars := root.Children()[0]
	assert.Equal(t, "Stars", stars.Name)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, stars.Translation())
	assert.False(t, stars.ComponentsStale())

	require.Len(t, stars.Children(), 1)
	star := stars.Children()[0]
	assert.Equal(t, "Star.1", star.Name)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, star.Scale())
	assert.Equal(t, mgl64.QuatIdent(), star.Rotation())

	origin := mgl64.TransformCoordinate(mgl64.Vec3{}, star.WorldMatrix())
	assert.True(t, origin.ApproxEqualThreshold(mgl64.Vec3{4, 1, 0}, epsilon), "got %v", origin)

	wall := root.Children()[1]
	assert.Equal(t, "Wall", wall.Name)
	assert.True(t, wall.ComponentsStale())
	assert.True(t, wall.Translation().ApproxEqualThreshold(mgl64.Vec3{5, 0, -20}, epsilon))
}

func TestImportGLTF_Malformed(t *testing.T) {
	_, err := ImportGLTF(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestImportDocument(t *testing.T) {
	q := mgl64.QuatRotate(math.Pi/2, actor.Up)

	doc := &gltf.Document{
		Scenes: []*gltf.Scene{{Name: "level", Nodes: []uint32{0}}},
		Nodes: []*gltf.Node{
			// zero rotation and scale are treated as unset
			{Name: "Bare", Translation: [3]float32{1, 2, 3}},
			{
				Name:     "Turned",
				Rotation: [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)},
				Scale:    [3]float32{1, 1, 1},
			},
		},
	}
	doc.Nodes[0].Children = []uint32{1}

	root, err := importDocument(doc)
	require.NoError(t, err)

	bare := root.Find("Bare")
	require.NotNil(t, bare)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, bare.Translation())
	assert.Equal(t, mgl64.QuatIdent(), bare.Rotation())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, bare.Scale())

	turned := root.Find("Turned")
	require.NotNil(t, turned)
	assert.InDelta(t, 1, math.Abs(turned.Rotation().Dot(q)), epsilon)
}

func TestImportDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  *gltf.Document
	}{
		{"no scene", &gltf.Document{}},
		{"default scene out of range", &gltf.Document{
			Scene:  gltf.Index(3),
			Scenes: []*gltf.Scene{{}},
		}},
		{"node out of range", &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []uint32{4}}},
		}},
		{"cycle", &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
			Nodes:  []*gltf.Node{{Name: "loop", Children: []uint32{0}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importDocument(tt.doc)
			assert.Error(t, err)
		})
	}
}
