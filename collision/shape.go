// Package collision holds the primitives proposed by placement and growth
// algorithms, and the predicates telling whether they touch.
//
// Every predicate is boundary inclusive: shapes that are exactly tangent intersect.
package collision

import (
	"fmt"

	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a ball of given center and radius
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Capsule is a segment swept by a sphere whose radius varies linearly
// from R0 at P0 to R1 at P1.
type Capsule struct {
	P0 mgl64.Vec3
	P1 mgl64.Vec3
	R0 float64
	R1 float64
}

// ClosestPoint returns the point of the capsule axis closest to p and the capsule radius there
func (c Capsule) ClosestPoint(p mgl64.Vec3) (mgl64.Vec3, float64) {
	point, t := geometry.ClosestPointOnSegment(p, c.P0, c.P1)
	return point, geometry.Lerp(c.R0, c.R1, t)
}

// Face is one bounding plane of a convex shape, given by a point on it
// and its outward unit normal.
type Face struct {
	Vertex mgl64.Vec3
	Normal mgl64.Vec3
}

// SignedDistance is positive on the outward side of the face
func (f Face) SignedDistance(p mgl64.Vec3) float64 {
	return geometry.ScalarProjection(p.Sub(f.Vertex), f.Normal)
}

// ConvexShape is a convex polyhedron in half-space form: one reference vertex
// and one outward unit normal per face.
type ConvexShape struct {
	FaceVertices []mgl64.Vec3
	FaceNormals  []mgl64.Vec3
}

// Validate checks that every face has exactly one vertex and one normal
func (s ConvexShape) Validate() error {
	if len(s.FaceVertices) != len(s.FaceNormals) {
		return fmt.Errorf("convex shape has %d face vertices and %d face normals: %w",
			len(s.FaceVertices), len(s.FaceNormals), geometry.ErrShapeMismatch)
	}
	return nil
}

// NumFaces returns the number of bounding planes
func (s ConvexShape) NumFaces() int {
	return len(s.FaceNormals)
}

// Face returns the i-th bounding plane
func (s ConvexShape) Face(i int) Face {
	return Face{Vertex: s.FaceVertices[i], Normal: s.FaceNormals[i]}
}

// Centroid averages the face reference vertices
func (s ConvexShape) Centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, v := range s.FaceVertices {
		sum = sum.Add(v)
	}
	if len(s.FaceVertices) == 0 {
		return sum
	}
	return sum.Mul(1 / float64(len(s.FaceVertices)))
}

// Transformed returns the shape moved by t
func (s ConvexShape) Transformed(t geometry.Transform) ConvexShape {
	normals := make([]mgl64.Vec3, len(s.FaceNormals))
	for i, n := range s.FaceNormals {
		normals[i] = t.ApplyDirection(n)
	}
	return ConvexShape{FaceVertices: t.ApplyAll(s.FaceVertices), FaceNormals: normals}
}

// NewBoxShape builds the six faces of an oriented box.
// The box is defined by its half-extents (half-width, half-height, half-depth).
func NewBoxShape(center, halfExtents mgl64.Vec3, rotation mgl64.Quat) ConvexShape {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	// one vertex of each face in local space, with its outward normal
	faces := []Face{
		{Vertex: mgl64.Vec3{hx, -hy, -hz}, Normal: mgl64.Vec3{1, 0, 0}},
		{Vertex: mgl64.Vec3{-hx, -hy, hz}, Normal: mgl64.Vec3{-1, 0, 0}},
		{Vertex: mgl64.Vec3{-hx, hy, -hz}, Normal: mgl64.Vec3{0, 1, 0}},
		{Vertex: mgl64.Vec3{-hx, -hy, hz}, Normal: mgl64.Vec3{0, -1, 0}},
		{Vertex: mgl64.Vec3{-hx, -hy, hz}, Normal: mgl64.Vec3{0, 0, 1}},
		{Vertex: mgl64.Vec3{hx, -hy, -hz}, Normal: mgl64.Vec3{0, 0, -1}},
	}

	local := ConvexShape{
		FaceVertices: make([]mgl64.Vec3, len(faces)),
		FaceNormals:  make([]mgl64.Vec3, len(faces)),
	}
	for i, face := range faces {
		local.FaceVertices[i] = face.Vertex
		local.FaceNormals[i] = face.Normal
	}

	return local.Transformed(geometry.Transform{Position: center, Rotation: rotation})
}
