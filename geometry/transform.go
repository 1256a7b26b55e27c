package geometry

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid motion: a rotation followed by a translation
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Apply moves a point by the transform
func (t Transform) Apply(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// ApplyDirection rotates a direction, translation does not apply to it
func (t Transform) ApplyDirection(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(direction)
}

// ApplyAll moves every point, returning a new slice
func (t Transform) ApplyAll(points []mgl64.Vec3) []mgl64.Vec3 {
	moved := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		moved[i] = t.Apply(p)
	}
	return moved
}
