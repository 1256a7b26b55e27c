// Package geometry holds the vector helpers shared by the morphology,
// endfoot and collision packages.
package geometry

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrShapeMismatch is returned when parallel input arrays disagree in length,
// or when an element does not have the shape an operation needs.
var ErrShapeMismatch = errors.New("shape mismatch")

// ScalarProjection returns the coordinate of v along unitAxis.
// unitAxis must already be normalized.
func ScalarProjection(v, unitAxis mgl64.Vec3) float64 {
	return v.Dot(unitAxis)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b mgl64.Vec3) mgl64.Vec3 {
	return a.Add(b).Mul(0.5)
}

// ClosestPointOnSegment returns the point of the finite segment [a, b] closest to p,
// and its parametric position t in [0, 1]. A degenerate segment returns a with t = 0.
func ClosestPointOnSegment(p, a, b mgl64.Vec3) (mgl64.Vec3, float64) {
	axis := b.Sub(a)
	lengthSquared := axis.Dot(axis)
	if lengthSquared == 0 {
		return a, 0
	}

	t := mgl64.Clamp(p.Sub(a).Dot(axis)/lengthSquared, 0, 1)
	return a.Add(axis.Mul(t)), t
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
