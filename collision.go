package chomp

import (
	"github.com/akmonengine/chomp/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// resolveCollision tests the subject against other and, on overlap, applies
// the outcome of other's behavior then pushes the subject out along the
// axis of least penetration.
func (w *World) resolveCollision(other *actor.Node) {
	otherBox, ok := other.WorldAABB()
	if !ok {
		return
	}
	subjectBox := w.Subject.WorldAABB()

	if !subjectBox.Overlaps(otherBox) {
		return
	}

	switch b := other.Behavior.(type) {
	case *actor.Collectible:
		w.collect(other)
		return
	case *actor.Patroller, *actor.Rotator:
		w.lose(other)
	case *actor.Static:
		if !b.Floor {
			w.lose(other)
		}
	}

	correction := subjectBox.MinimumTranslation(otherBox)
	node := w.Subject.Node
	node.Translate(toParentSpace(node, correction))
	// later tests of this pass must see the corrected position
	node.Matrix()

	w.Events.recordContact(other, correction)
	w.logger().Debug("subject pushed out", "node", other.Name, "kind", other.Behavior.Kind(), "correction", correction)
}

// collect retires a collectible: it leaves the world at the end of the pass
// and is detached from the scene right away.
func (w *World) collect(node *actor.Node) {
	if w.pending == nil {
		w.pending = make(map[*actor.Node]bool)
	}
	w.pending[node] = true
	node.RemoveFromParent()
	w.Events.forget(node)

	w.remaining--
	w.Events.emit(CollectEvent{Node: node})
	w.Events.emit(ScoreChangedEvent{Remaining: w.remaining, Collected: w.Collected()})
	w.logger().Info("collected", "node", node.Name, "remaining", w.remaining)

	if w.remaining == 0 {
		w.Subject.Stop()
		w.Events.emit(WinEvent{})
		w.logger().Info("all collectibles taken")
	}
}

// lose stops the subject and its companion
func (w *World) lose(node *actor.Node) {
	w.Subject.Stop()
	if w.Companion != nil {
		w.Companion.Stop()
	}

	w.Events.emit(LossEvent{Node: node, Kind: node.Behavior.Kind()})
	w.logger().Info("hit hazard", "node", node.Name, "kind", node.Behavior.Kind())
}

// toParentSpace converts a world-space displacement into the space of node's
// parent, where its translation lives.
func toParentSpace(node *actor.Node, delta mgl64.Vec3) mgl64.Vec3 {
	parent := node.Parent()
	if parent == nil {
		return delta
	}

	return mgl64.TransformNormal(delta, parent.WorldMatrix().Inv())
}
