package actor

import "github.com/go-gl/mathgl/mgl64"

// Body is a node moved by an external controller: the player, or the camera
// following it. Its velocity is produced outside and only read or cleared here.
type Body struct {
	Node *Node
	// Local-space collision box
	Box AABB
	// Linear velocity (units/s)
	Velocity mgl64.Vec3
}

// NewBody creates a body with the default subject box
func NewBody(node *Node) *Body {
	return &Body{
		Node: node,
		Box:  SubjectBox,
	}
}

// IsMovingHorizontally reports whether the X component of the velocity is nonzero
func (b *Body) IsMovingHorizontally() bool {
	return b.Velocity.X() != 0
}

// Stop clears the velocity
func (b *Body) Stop() {
	b.Velocity = mgl64.Vec3{0, 0, 0}
}

// Advance integrates the velocity into the node translation
func (b *Body) Advance(dt float64) {
	b.Node.Translate(b.Velocity.Mul(dt))
}

// WorldAABB returns the body's box in world space
func (b *Body) WorldAABB() AABB {
	return b.Box.Transform(b.Node.WorldMatrix())
}
