package actor

import "math"

// Kind identifies a behavior variant
type Kind int

const (
	KindCollectible Kind = iota
	KindPatroller
	KindRotator
	KindWall
	KindFloor
)

func (k Kind) String() string {
	switch k {
	case KindCollectible:
		return "collectible"
	case KindPatroller:
		return "patroller"
	case KindRotator:
		return "rotator"
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	}
	return "unknown"
}

// Local boxes of each variant, and of the moving subject
var (
	CollectibleBox = NewAABB(-1.0, -0.5, -0.5, 1.0, 0.5, 0.5)
	PatrollerBox   = NewAABB(-0.8, -1.0, -0.5, 0.8, 1.0, 0.5)
	RotatorBox     = NewAABB(-1.2, -0.2, -1.2, 1.2, 0.2, 1.2)
	WallBox        = NewAABB(-5.05, -0.1, -2.05, 5.05, 0.1, 2.05)
	FloorBox       = NewAABB(-1.5, -69, -0.05, 1.5, 69, 0.05)
	SubjectBox     = NewAABB(-1, -1, -1, 1, 1, 1)
)

// DefaultBox returns the local box used by a variant when none is given
func DefaultBox(kind Kind) AABB {
	switch kind {
	case KindCollectible:
		return CollectibleBox
	case KindPatroller:
		return PatrollerBox
	case KindRotator:
		return RotatorBox
	case KindWall:
		return WallBox
	case KindFloor:
		return FloorBox
	}
	return AABB{}
}

// Behavior is the per-node collision role. Update mutates only the node it
// is given, which must be the node owning the behavior.
type Behavior interface {
	Kind() Kind
	// AABB is the local-space bounding box, fixed at construction
	AABB() AABB
	Update(node *Node, dt float64)
}

const (
	CollectibleSpeed = 0.2
	RotatorSpeed     = 1.0
	PatrolBound      = 5.0
	PatrolStep       = 0.1
)

// Collectible spins in place and is removed from the world when touched
type Collectible struct {
	Box   AABB
	Speed float64 // rad/s
}

func NewCollectible() *Collectible {
	return &Collectible{Box: CollectibleBox, Speed: CollectibleSpeed}
}

func (c *Collectible) Kind() Kind { return KindCollectible }
func (c *Collectible) AABB() AABB { return c.Box }

func (c *Collectible) Update(node *Node, dt float64) {
	node.Rotate(c.Speed*dt, Up)
}

// Patroller moves back and forth along one local axis, turning around once
// the coordinate reaches ±Bound.
//
// The step is applied once per update and is not scaled by dt, so the
// patrol speed depends on the frame rate.
type Patroller struct {
	Box   AABB
	Axis  int // 0: X, 1: Y, 2: Z
	Bound float64
	Step  float64

	direction float64
}

func NewPatroller() *Patroller {
	return &Patroller{Box: PatrollerBox, Axis: 0, Bound: PatrolBound, Step: PatrolStep, direction: 1}
}

func (p *Patroller) Kind() Kind { return KindPatroller }
func (p *Patroller) AABB() AABB { return p.Box }

// Direction returns the current sign of motion, +1 or -1
func (p *Patroller) Direction() float64 {
	if p.direction == 0 {
		return 1
	}
	return p.direction
}

func (p *Patroller) Update(node *Node, dt float64) {
	p.direction = p.Direction()

	translation := node.Translation()
	if math.Abs(translation[p.Axis]) >= p.Bound {
		p.direction = -p.direction
	}
	translation[p.Axis] += p.direction * p.Step
	node.SetTranslation(translation)
}

// Rotator is a hazard spinning about the vertical axis
type Rotator struct {
	Box   AABB
	Speed float64 // rad/s
}

func NewRotator() *Rotator {
	return &Rotator{Box: RotatorBox, Speed: RotatorSpeed}
}

func (r *Rotator) Kind() Kind { return KindRotator }
func (r *Rotator) AABB() AABB { return r.Box }

func (r *Rotator) Update(node *Node, dt float64) {
	node.Rotate(r.Speed*dt, Up)
}

// Static never moves. Walls end the game on contact, floors only block.
type Static struct {
	Box   AABB
	Floor bool
}

func NewWall() *Static {
	return &Static{Box: WallBox}
}

func NewFloor() *Static {
	return &Static{Box: FloorBox, Floor: true}
}

func (s *Static) Kind() Kind {
	if s.Floor {
		return KindFloor
	}
	return KindWall
}

func (s *Static) AABB() AABB { return s.Box }

func (s *Static) Update(node *Node, dt float64) {}

// NewBehavior builds the default behavior of a kind
func NewBehavior(kind Kind) Behavior {
	switch kind {
	case KindCollectible:
		return NewCollectible()
	case KindPatroller:
		return NewPatroller()
	case KindRotator:
		return NewRotator()
	case KindWall:
		return NewWall()
	case KindFloor:
		return NewFloor()
	}
	return nil
}
