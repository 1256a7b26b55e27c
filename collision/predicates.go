package collision

import (
	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// SphereSphere reports whether two spheres touch or overlap
func SphereSphere(a, b Sphere) bool {
	return geometry.Distance(a.Center, b.Center) <= a.Radius+b.Radius
}

// SphereCapsule reports whether the sphere touches the capsule.
// The capsule radius is interpolated at the axis point closest to the sphere center.
func SphereCapsule(s Sphere, c Capsule) bool {
	closest, radius := c.ClosestPoint(s.Center)
	return geometry.Distance(s.Center, closest) <= s.Radius+radius
}

// SphereFace reports whether the sphere reaches the face plane from its outward side:
// the signed distance of the center to the plane is at most the radius.
func SphereFace(f Face, s Sphere) bool {
	return f.SignedDistance(s.Center) <= s.Radius
}

// ContainsPoint reports whether p lies on the inward side of every face, boundary included
func (s ConvexShape) ContainsPoint(p mgl64.Vec3) bool {
	for i := range s.FaceNormals {
		if s.Face(i).SignedDistance(p) > 0 {
			return false
		}
	}
	return true
}
