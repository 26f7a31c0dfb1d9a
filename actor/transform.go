package actor

import "github.com/go-gl/mathgl/mgl64"

// Up is the vertical axis used by spinning behaviors
var Up = mgl64.Vec3{0, 1, 0}

// Transform holds a local placement in two equivalent forms: decomposed
// translation/rotation/scale components and the composed 4x4 matrix.
// Whichever form was written last is authoritative, the other one is
// recomputed on the next read.
type Transform struct {
	translation mgl64.Vec3
	rotation    mgl64.Quat
	scale       mgl64.Vec3
	matrix      mgl64.Mat4

	// matrixStale: components were written, matrix must be recomposed.
	// componentsStale: matrix was written, components must be decomposed.
	// Never both true.
	matrixStale     bool
	componentsStale bool
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
		matrix:   mgl64.Ident4(),
	}
}

// NewTransformTRS creates a transform from its components
func NewTransformTRS(translation mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) Transform {
	t := Transform{
		translation: translation,
		rotation:    rotation,
		scale:       scale,
	}
	t.UpdateMatrix()

	return t
}

// NewTransformMatrix creates a transform from a composed local matrix
func NewTransformMatrix(m mgl64.Mat4) Transform {
	t := Transform{matrix: m}
	t.UpdateComponents()

	return t
}

// UpdateComponents decomposes the matrix into translation, rotation and scale.
// The matrix is expected to be a T*R*S composition with positive scale.
// It is a no-op while the components are the authoritative form.
func (t *Transform) UpdateComponents() {
	if t.matrixStale {
		return
	}
	m := t.matrix
	sx, sy, sz := mgl64.Extract3DScale(m)

	t.translation = m.Col(3).Vec3()
	t.scale = mgl64.Vec3{sx, sy, sz}

	r := mgl64.Ident4()
	if sx != 0 && sy != 0 && sz != 0 {
		r.SetCol(0, m.Col(0).Mul(1/sx))
		r.SetCol(1, m.Col(1).Mul(1/sy))
		r.SetCol(2, m.Col(2).Mul(1/sz))
	}
	t.rotation = mgl64.Mat4ToQuat(r).Normalize()

	t.componentsStale = false
}

// UpdateMatrix composes the matrix from the components as T * R * S.
// It is a no-op while the matrix is the authoritative form.
func (t *Transform) UpdateMatrix() {
	if t.componentsStale {
		return
	}
	t.matrix = mgl64.Translate3D(t.translation.X(), t.translation.Y(), t.translation.Z()).
		Mul4(t.rotation.Mat4()).
		Mul4(mgl64.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z()))

	t.matrixStale = false
}

func (t *Transform) syncComponents() {
	if t.componentsStale {
		t.UpdateComponents()
	}
}

func (t *Transform) Translation() mgl64.Vec3 {
	t.syncComponents()
	return t.translation
}

func (t *Transform) SetTranslation(translation mgl64.Vec3) {
	t.syncComponents()
	t.translation = translation
	t.matrixStale = true
}

func (t *Transform) Rotation() mgl64.Quat {
	t.syncComponents()
	return t.rotation
}

func (t *Transform) SetRotation(rotation mgl64.Quat) {
	t.syncComponents()
	t.rotation = rotation
	t.matrixStale = true
}

func (t *Transform) Scale() mgl64.Vec3 {
	t.syncComponents()
	return t.scale
}

func (t *Transform) SetScale(scale mgl64.Vec3) {
	t.syncComponents()
	t.scale = scale
	t.matrixStale = true
}

// Translate adds delta to the translation
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.SetTranslation(t.Translation().Add(delta))
}

// Matrix returns the local matrix, recomposing it first if components changed
func (t *Transform) Matrix() mgl64.Mat4 {
	if t.matrixStale {
		t.UpdateMatrix()
	}
	return t.matrix
}

// SetMatrix replaces the local matrix. Components are decomposed lazily.
func (t *Transform) SetMatrix(m mgl64.Mat4) {
	t.matrix = m
	t.componentsStale = true
	t.matrixStale = false
}

// Rotate composes an extra rotation of angle radians about axis onto the
// current rotation, q = q * r.
func (t *Transform) Rotate(angle float64, axis mgl64.Vec3) {
	t.syncComponents()
	t.rotation = t.rotation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
	t.matrixStale = true
}

// MatrixStale reports whether the matrix is pending recomposition
func (t *Transform) MatrixStale() bool {
	return t.matrixStale
}

// ComponentsStale reports whether the components are pending decomposition
func (t *Transform) ComponentsStale() bool {
	return t.componentsStale
}
