package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box from its min and max corners
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{
		Min: mgl64.Vec3{minX, minY, minZ},
		Max: mgl64.Vec3{maxX, maxY, maxZ},
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return intervalsOverlap(a.Min.X(), a.Max.X(), other.Min.X(), other.Max.X()) &&
		intervalsOverlap(a.Min.Y(), a.Max.Y(), other.Min.Y(), other.Max.Y()) &&
		intervalsOverlap(a.Min.Z(), a.Max.Z(), other.Min.Z(), other.Max.Z())
}

func intervalsOverlap(minA, maxA, minB, maxB float64) bool {
	return !(minA > maxB || minB > maxA)
}

// Corners returns the 8 corners of the box
func (a AABB) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
	}
}

// Transform returns the axis-aligned box enclosing the 8 corners of a
// transformed by m. Rotations and shears do not keep the box axis-aligned,
// so it is rebuilt from the corners rather than moved.
func (a AABB) Transform(m mgl64.Mat4) AABB {
	corners := a.Corners()

	worldCorner := mgl64.TransformCoordinate(corners[0], m)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = mgl64.TransformCoordinate(corners[i], m)

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}

// MinimumTranslation returns the smallest single-axis displacement of a that
// separates it from other. Candidates are evaluated in the order
// +X, +Y, +Z (other.Max - a.Min) then -X, -Y, -Z (a.Max - other.Min),
// negative candidates are ignored and the first minimum wins.
func (a AABB) MinimumTranslation(other AABB) mgl64.Vec3 {
	pushIn := other.Max.Sub(a.Min)
	pushOut := a.Max.Sub(other.Min)

	minDiff := math.Inf(1)
	var direction mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		if pushIn[axis] >= 0 && pushIn[axis] < minDiff {
			minDiff = pushIn[axis]
			direction = mgl64.Vec3{}
			direction[axis] = minDiff
		}
	}
	for axis := 0; axis < 3; axis++ {
		if pushOut[axis] >= 0 && pushOut[axis] < minDiff {
			minDiff = pushOut[axis]
			direction = mgl64.Vec3{}
			direction[axis] = -minDiff
		}
	}

	return direction
}

// Translate returns the box moved by delta
func (a AABB) Translate(delta mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(delta), Max: a.Max.Add(delta)}
}
