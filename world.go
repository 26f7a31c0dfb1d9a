package chomp

import (
	"log/slog"

	"github.com/akmonengine/chomp/actor"
)

type World struct {
	// Subject is the moving body tested against every other node
	Subject *actor.Body
	// Companion follows the subject (usually the camera). It is stopped
	// together with the subject on a loss. May be nil.
	Companion *actor.Body
	// Nodes is the flat set of tracked nodes. Nodes without a behavior are
	// kept but never tested.
	Nodes []*actor.Node

	Events Events
	Logger *slog.Logger

	total     int
	remaining int
	// nodes collected during the current pass, removed once it ends
	pending map[*actor.Node]bool
}

// NewWorld creates a world tracking nodes, and counts the collectibles among them
func NewWorld(subject, companion *actor.Body, nodes []*actor.Node) *World {
	w := &World{
		Subject:   subject,
		Companion: companion,
		Events:    NewEvents(),
		pending:   make(map[*actor.Node]bool),
	}
	for _, node := range nodes {
		w.AddNode(node)
	}

	return w
}

// AddNode starts tracking a node. Nodes already tracked are ignored.
func (w *World) AddNode(node *actor.Node) {
	if w.indexOf(node) != -1 {
		return
	}
	w.Nodes = append(w.Nodes, node)
	if _, ok := node.Behavior.(*actor.Collectible); ok {
		w.total++
		w.remaining++
	}
}

// RemoveNode stops tracking a node and detaches it from its parent. A
// collectible removed this way no longer counts towards the win.
func (w *World) RemoveNode(node *actor.Node) {
	if !w.untrack(node) {
		return
	}
	node.RemoveFromParent()
	w.Events.forget(node)

	if _, ok := node.Behavior.(*actor.Collectible); ok {
		w.total--
		w.remaining--
	}
}

func (w *World) indexOf(node *actor.Node) int {
	for i, n := range w.Nodes {
		if n == node {
			return i
		}
	}

	return -1
}

func (w *World) untrack(node *actor.Node) bool {
	k := w.indexOf(node)
	if k == -1 {
		return false
	}
	w.Nodes = append(w.Nodes[:k], w.Nodes[k+1:]...)

	return true
}

// Remaining returns the number of collectibles still in the world
func (w *World) Remaining() int {
	return w.remaining
}

// Collected returns the number of collectibles taken so far
func (w *World) Collected() int {
	return w.total - w.remaining
}

// Total returns the number of collectibles the world started with
func (w *World) Total() int {
	return w.total
}

// Update runs one frame: behaviors are advanced, then the subject is tested
// against every tracked node. Nothing happens while the subject has no
// horizontal velocity, even if it overlaps something.
func (w *World) Update(dt float64) {
	defer w.Events.flush()

	if !w.Subject.IsMovingHorizontally() {
		return
	}

	w.advance(dt)
	w.detectCollision()
}

// advance runs the per-frame motion of collectibles and patrollers
func (w *World) advance(dt float64) {
	for _, node := range w.Nodes {
		switch node.Behavior.(type) {
		case *actor.Collectible, *actor.Patroller:
			node.Behavior.Update(node, dt)
		}
	}
}

func (w *World) detectCollision() {
	w.Events.markTested()

	for _, node := range w.Nodes {
		if node == w.Subject.Node || w.pending[node] {
			continue
		}
		w.resolveCollision(node)
	}

	w.applyRemovals()
}

func (w *World) applyRemovals() {
	if len(w.pending) == 0 {
		return
	}

	n := 0
	for _, node := range w.Nodes {
		if !w.pending[node] {
			w.Nodes[n] = node
			n++
		}
	}
	clear(w.Nodes[n:])
	w.Nodes = w.Nodes[:n]
	clear(w.pending)
}

func (w *World) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
