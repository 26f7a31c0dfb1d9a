package scene

import (
	"io"

	"github.com/akmonengine/chomp/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

var identity32 = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// ImportGLTFFile reads the node hierarchy of a glTF or GLB file
func ImportGLTFFile(path string) (*actor.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open gltf %q", path)
	}

	return importDocument(doc)
}

// ImportGLTF decodes a glTF document from r and returns a root node holding
// the nodes of its default scene. Only names and transforms are imported.
func ImportGLTF(r io.Reader) (*actor.Node, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to read gltf")
	}

	return importDocument(doc)
}

func importDocument(doc *gltf.Document) (*actor.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("gltf has no scene")
	}
	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = int(*doc.Scene)
	}
	if sceneIndex >= len(doc.Scenes) {
		return nil, errors.Errorf("gltf default scene %d out of range", sceneIndex)
	}

	root := actor.NewNode(doc.Scenes[sceneIndex].Name)
	visited := make(map[uint32]bool)

	var importNode func(id uint32) (*actor.Node, error)
	importNode = func(id uint32) (*actor.Node, error) {
		if int(id) >= len(doc.Nodes) {
			return nil, errors.Errorf("gltf node %d out of range", id)
		}
		if visited[id] {
			return nil, errors.Errorf("gltf node %d referenced twice", id)
		}
		visited[id] = true

		src := doc.Nodes[id]
		node := actor.NewNode(src.Name)
		applyGLTFTransform(node, src)

		for _, childID := range src.Children {
			child, err := importNode(childID)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		}

		return node, nil
	}

	for _, id := range doc.Scenes[sceneIndex].Nodes {
		node, err := importNode(id)
		if err != nil {
			return nil, err
		}
		root.AddChild(node)
	}

	return root, nil
}

// applyGLTFTransform uses the node matrix when it is set, its TRS otherwise
func applyGLTFTransform(node *actor.Node, src *gltf.Node) {
	if src.Matrix != identity32 && src.Matrix != [16]float32{} {
		var m mgl64.Mat4
		for i, v := range src.Matrix {
			m[i] = float64(v)
		}
		node.SetMatrix(m)
		return
	}

	t := src.Translation
	node.SetTranslation(mgl64.Vec3{float64(t[0]), float64(t[1]), float64(t[2])})

	r := src.Rotation
	if r != [4]float32{} {
		node.SetRotation(mgl64.Quat{
			W: float64(r[3]),
			V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])},
		}.Normalize())
	}

	s := src.Scale
	if s != [3]float32{} {
		node.SetScale(mgl64.Vec3{float64(s[0]), float64(s[1]), float64(s[2])})
	}
}
