package actor

import "github.com/go-gl/mathgl/mgl64"

// DefaultRotationSpeed is the spin speed (rad/s) of a node without an explicit one
const DefaultRotationSpeed = 0.5

// Node is an element of the scene hierarchy. Its local Transform is placed
// in the parent's space; the world matrix is derived by walking ancestors.
//
// Callers must not create parenting cycles.
type Node struct {
	Name string
	Transform

	// Angular speed (rad/s) used by AdvanceRotation
	RotationSpeed float64

	// Behavior is nil for scenery that never takes part in collisions
	Behavior Behavior

	parent   *Node
	children []*Node
}

// NewNode creates a node at the origin with identity rotation and unit scale
func NewNode(name string) *Node {
	return NewNodeWithTransform(name, NewTransform())
}

// NewNodeWithTransform creates a node with the given local transform
func NewNodeWithTransform(name string, transform Transform) *Node {
	return &Node{
		Name:          name,
		Transform:     transform,
		RotationSpeed: DefaultRotationSpeed,
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild appends child to n, detaching it from its previous parent first
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	n.children = append(n.children, child)
	child.parent = n
}

// RemoveChild detaches child from n. It is a no-op if child is not one of n's children.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveFromParent detaches n from its parent, if any
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// WorldMatrix returns parent.WorldMatrix() * n.Matrix(), recursively.
// Nothing is cached: the whole chain is recomposed on every call.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.Matrix()
	}

	return n.parent.WorldMatrix().Mul4(n.Matrix())
}

// Traverse visits the subtree depth-first. before is called when entering a
// node, after when leaving it. Both are optional.
func (n *Node) Traverse(before, after func(node *Node)) {
	if before != nil {
		before(n)
	}
	for _, child := range n.children {
		child.Traverse(before, after)
	}
	if after != nil {
		after(n)
	}
}

// Find returns the first node of the subtree (pre-order) with the given name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}

	return nil
}

// AdvanceRotation spins the node about the vertical axis by RotationSpeed*dt
func (n *Node) AdvanceRotation(dt float64) {
	n.Rotate(n.RotationSpeed*dt, Up)
}

// Flatten returns every node of the subtree in pre-order
func Flatten(root *Node) []*Node {
	var nodes []*Node
	root.Traverse(func(node *Node) {
		nodes = append(nodes, node)
	}, nil)

	return nodes
}

// WorldAABB returns the behavior's box in world space. ok is false for nodes
// without a behavior.
func (n *Node) WorldAABB() (box AABB, ok bool) {
	if n.Behavior == nil {
		return AABB{}, false
	}

	return n.Behavior.AABB().Transform(n.WorldMatrix()), true
}
