// Package scene builds node trees for the collision world from level files.
//
// A level is a YAML manifest listing nodes with an explicit behavior tag,
// optionally importing the node hierarchy from a glTF file and tagging the
// imported nodes by name.
package scene

import (
	"os"
	"path/filepath"

	"github.com/akmonengine/chomp/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Level struct {
	Name string `yaml:"name"`
	// GLTF is an optional glTF file, relative to the level file, whose default
	// scene is imported under the root node.
	GLTF string `yaml:"gltf"`
	// Tags assigns behaviors to imported glTF nodes by name
	Tags      map[string]NodeSpec `yaml:"tags"`
	Nodes     []NodeSpec          `yaml:"nodes"`
	Subject   BodySpec            `yaml:"subject"`
	Companion *BodySpec           `yaml:"companion"`
	Script    []Segment           `yaml:"script"`
}

type NodeSpec struct {
	Name string `yaml:"name"`
	// Behavior is one of collectible, patroller, rotator, wall, floor, or
	// empty for scenery.
	Behavior    string      `yaml:"behavior"`
	Translation *[3]float64 `yaml:"translation"`
	// Rotation is a quaternion as x, y, z, w
	Rotation *[4]float64 `yaml:"rotation"`
	Scale    *[3]float64 `yaml:"scale"`
	// Matrix is a column-major 4x4 local matrix, exclusive with TRS
	Matrix []float64 `yaml:"matrix"`
	Box    *BoxSpec  `yaml:"box"`

	// Behavior tunables, defaults apply when unset
	Speed         *float64 `yaml:"speed"`
	Bound         *float64 `yaml:"bound"`
	Step          *float64 `yaml:"step"`
	Axis          *int     `yaml:"axis"`
	RotationSpeed *float64 `yaml:"rotation_speed"`

	Children []NodeSpec `yaml:"children"`
}

type BoxSpec struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func (b BoxSpec) AABB() actor.AABB {
	return actor.AABB{Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max)}
}

type BodySpec struct {
	// Node names the node of the tree carrying the body
	Node     string     `yaml:"node"`
	Box      *BoxSpec   `yaml:"box"`
	Velocity [3]float64 `yaml:"velocity"`
}

// Segment drives the subject at a constant velocity for a number of frames
type Segment struct {
	Frames   int        `yaml:"frames"`
	Velocity [3]float64 `yaml:"velocity"`
}

// Scene is a built level
type Scene struct {
	Name      string
	Root      *actor.Node
	Subject   *actor.Body
	Companion *actor.Body
	Script    []Segment
}

// Nodes returns every node below the root, in pre-order
func (s *Scene) Nodes() []*actor.Node {
	return actor.Flatten(s.Root)[1:]
}

// ParseKind maps a behavior tag to its kind
func ParseKind(tag string) (actor.Kind, error) {
	switch tag {
	case "collectible":
		return actor.KindCollectible, nil
	case "patroller":
		return actor.KindPatroller, nil
	case "rotator":
		return actor.KindRotator, nil
	case "wall":
		return actor.KindWall, nil
	case "floor":
		return actor.KindFloor, nil
	}
	return 0, errors.Errorf("unknown behavior %q", tag)
}

// ParseLevel decodes a YAML level manifest
func ParseLevel(data []byte) (*Level, error) {
	var level Level
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, errors.Wrap(err, "failed to decode level")
	}
	if level.Subject.Node == "" {
		return nil, errors.New("level has no subject node")
	}

	return &level, nil
}

// LoadLevel reads and decodes a level manifest
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level %q", path)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, errors.Wrapf(err, "level %q", path)
	}

	return level, nil
}

// Load reads a level file and builds its scene. Relative glTF paths are
// resolved from the level's directory.
func Load(path string) (*Scene, error) {
	level, err := LoadLevel(path)
	if err != nil {
		return nil, err
	}

	return Build(level, filepath.Dir(path))
}

// Build instantiates the node tree of a level
func Build(level *Level, dir string) (*Scene, error) {
	root := actor.NewNode(level.Name)

	if level.GLTF != "" {
		path := level.GLTF
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		imported, err := ImportGLTFFile(path)
		if err != nil {
			return nil, err
		}
		for _, child := range append([]*actor.Node(nil), imported.Children()...) {
			root.AddChild(child)
		}
	}

	var tagErr error
	root.Traverse(func(node *actor.Node) {
		spec, ok := level.Tags[node.Name]
		if !ok || tagErr != nil {
			return
		}
		tagErr = applyBehavior(node, spec)
	}, nil)
	if tagErr != nil {
		return nil, tagErr
	}

	for _, spec := range level.Nodes {
		node, err := buildNode(spec)
		if err != nil {
			return nil, err
		}
		root.AddChild(node)
	}

	s := &Scene{
		Name:   level.Name,
		Root:   root,
		Script: level.Script,
	}

	var err error
	if s.Subject, err = buildBody(root, level.Subject); err != nil {
		return nil, errors.Wrap(err, "subject")
	}
	if level.Companion != nil {
		if s.Companion, err = buildBody(root, *level.Companion); err != nil {
			return nil, errors.Wrap(err, "companion")
		}
	}

	return s, nil
}

func buildNode(spec NodeSpec) (*actor.Node, error) {
	transform, err := specTransform(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "node %q", spec.Name)
	}
	node := actor.NewNodeWithTransform(spec.Name, transform)

	if err := applyBehavior(node, spec); err != nil {
		return nil, err
	}

	for _, childSpec := range spec.Children {
		child, err := buildNode(childSpec)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}

	return node, nil
}

func specTransform(spec NodeSpec) (actor.Transform, error) {
	if len(spec.Matrix) > 0 {
		if len(spec.Matrix) != 16 {
			return actor.Transform{}, errors.Errorf("matrix has %d values, expected 16", len(spec.Matrix))
		}
		if spec.Translation != nil || spec.Rotation != nil || spec.Scale != nil {
			return actor.Transform{}, errors.New("matrix and translation/rotation/scale are exclusive")
		}
		var m mgl64.Mat4
		copy(m[:], spec.Matrix)

		return actor.NewTransformMatrix(m), nil
	}

	translation := mgl64.Vec3{}
	rotation := mgl64.QuatIdent()
	scale := mgl64.Vec3{1, 1, 1}
	if spec.Translation != nil {
		translation = mgl64.Vec3(*spec.Translation)
	}
	if spec.Rotation != nil {
		r := *spec.Rotation
		rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	}
	if spec.Scale != nil {
		scale = mgl64.Vec3(*spec.Scale)
	}

	return actor.NewTransformTRS(translation, rotation, scale), nil
}

// applyBehavior attaches the tagged behavior and its tunables to node
func applyBehavior(node *actor.Node, spec NodeSpec) error {
	if spec.RotationSpeed != nil {
		node.RotationSpeed = *spec.RotationSpeed
	}
	if spec.Behavior == "" {
		return nil
	}

	kind, err := ParseKind(spec.Behavior)
	if err != nil {
		return errors.Wrapf(err, "node %q", node.Name)
	}
	behavior := actor.NewBehavior(kind)

	switch b := behavior.(type) {
	case *actor.Collectible:
		if spec.Box != nil {
			b.Box = spec.Box.AABB()
		}
		if spec.Speed != nil {
			b.Speed = *spec.Speed
		}
	case *actor.Rotator:
		if spec.Box != nil {
			b.Box = spec.Box.AABB()
		}
		if spec.Speed != nil {
			b.Speed = *spec.Speed
		}
	case *actor.Patroller:
		if spec.Box != nil {
			b.Box = spec.Box.AABB()
		}
		if spec.Bound != nil {
			b.Bound = *spec.Bound
		}
		if spec.Step != nil {
			b.Step = *spec.Step
		}
		if spec.Axis != nil {
			if *spec.Axis < 0 || *spec.Axis > 2 {
				return errors.Errorf("node %q: axis %d out of range", node.Name, *spec.Axis)
			}
			b.Axis = *spec.Axis
		}
	case *actor.Static:
		if spec.Box != nil {
			b.Box = spec.Box.AABB()
		}
	}
	node.Behavior = behavior

	return nil
}

func buildBody(root *actor.Node, spec BodySpec) (*actor.Body, error) {
	node := root.Find(spec.Node)
	if node == nil {
		return nil, errors.Errorf("node %q not found", spec.Node)
	}

	body := actor.NewBody(node)
	if spec.Box != nil {
		body.Box = spec.Box.AABB()
	}
	body.Velocity = mgl64.Vec3(spec.Velocity)

	return body, nil
}
