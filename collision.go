package ngvgeom

import (
	"fmt"

	"github.com/akmonengine/ngvgeom/collision"
	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// SphereVsSpheres tests one sphere against many, result i is true when
// the sphere touches or overlaps sphere i.
func (e *Engine) SphereVsSpheres(center mgl64.Vec3, radius float64, centers []mgl64.Vec3, radii []float64) ([]bool, error) {
	if len(centers) != len(radii) {
		return nil, fmt.Errorf("%d centers and %d radii: %w", len(centers), len(radii), geometry.ErrShapeMismatch)
	}

	sphere := collision.Sphere{Center: center, Radius: radius}
	result := make([]bool, len(centers))
	task(e.workers(), len(centers), func(i int) {
		result[i] = collision.SphereSphere(sphere, collision.Sphere{Center: centers[i], Radius: radii[i]})
	})
	return result, nil
}

// SphereVsCapsules tests one sphere against the capsules (p0[i], p1[i], r0[i], r1[i]).
func (e *Engine) SphereVsCapsules(center mgl64.Vec3, radius float64, p0, p1 []mgl64.Vec3, r0, r1 []float64) ([]bool, error) {
	n := len(p0)
	if len(p1) != n || len(r0) != n || len(r1) != n {
		return nil, fmt.Errorf("capsule arrays of lengths %d, %d, %d, %d: %w",
			len(p0), len(p1), len(r0), len(r1), geometry.ErrShapeMismatch)
	}

	sphere := collision.Sphere{Center: center, Radius: radius}
	result := make([]bool, n)
	task(e.workers(), n, func(i int) {
		result[i] = collision.SphereCapsule(sphere, collision.Capsule{P0: p0[i], P1: p1[i], R0: r0[i], R1: r1[i]})
	})
	return result, nil
}

// ConvexShapeVsSpheres pairs face i of the shape with sphere i, and reports whether
// the sphere reaches that face plane from the outward side.
func (e *Engine) ConvexShapeVsSpheres(shape collision.ConvexShape, centers []mgl64.Vec3, radii []float64) ([]bool, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(centers) != shape.NumFaces() || len(radii) != shape.NumFaces() {
		return nil, fmt.Errorf("%d faces, %d centers and %d radii: %w",
			shape.NumFaces(), len(centers), len(radii), geometry.ErrShapeMismatch)
	}

	result := make([]bool, len(centers))
	task(e.workers(), len(centers), func(i int) {
		result[i] = collision.SphereFace(shape.Face(i), collision.Sphere{Center: centers[i], Radius: radii[i]})
	})
	return result, nil
}

// ConvexShapeVsPoint reports whether the point is inside the shape, boundary included
func (e *Engine) ConvexShapeVsPoint(shape collision.ConvexShape, point mgl64.Vec3) (bool, error) {
	if err := shape.Validate(); err != nil {
		return false, err
	}
	return shape.ContainsPoint(point), nil
}
