// Package endfoot derives an equivalent cylindrical compartment from the
// surface mesh of an astrocytic endfoot wrapped around a vessel segment.
package endfoot

import (
	"fmt"

	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is the grown surface of one endfoot on the vasculature.
// A mesh without triangles never grew and has no surface.
type Mesh struct {
	Index     int
	Points    []mgl64.Vec3
	Triangles [][3]int
	// Area is the surface area after the growth was reduced to its target
	Area          float64
	UnreducedArea float64
	Thickness     float64
}

// IsDegenerate reports whether the mesh has no surface
func (m Mesh) IsDegenerate() bool {
	return len(m.Triangles) == 0
}

// Validate checks the triangle indices and the physical quantities of the mesh.
// Area and thickness may only be zero on a degenerate mesh.
func (m Mesh) Validate() error {
	if m.Area < 0 || m.UnreducedArea < 0 || m.Thickness < 0 {
		return fmt.Errorf("endfoot %d: negative area or thickness: %w", m.Index, geometry.ErrShapeMismatch)
	}
	if m.IsDegenerate() {
		return nil
	}

	for i, triangle := range m.Triangles {
		for _, vertex := range triangle {
			if vertex < 0 || vertex >= len(m.Points) {
				return fmt.Errorf("endfoot %d: triangle %d references point %d of %d: %w",
					m.Index, i, vertex, len(m.Points), geometry.ErrShapeMismatch)
			}
		}
	}

	if m.Area == 0 || m.Thickness == 0 {
		return fmt.Errorf("endfoot %d: zero area or thickness on a non empty mesh: %w",
			m.Index, geometry.ErrShapeMismatch)
	}
	return nil
}

// SurfaceArea sums the area of the mesh triangles
func (m Mesh) SurfaceArea() float64 {
	area := 0.0
	for _, triangle := range m.Triangles {
		a := m.Points[triangle[0]]
		b := m.Points[triangle[1]]
		c := m.Points[triangle[2]]
		area += 0.5 * b.Sub(a).Cross(c.Sub(a)).Len()
	}
	return area
}

// MeshSource gives access to endfoot meshes by position
type MeshSource interface {
	Len() int
	At(i int) Mesh
}

// Meshes is an in-memory MeshSource
type Meshes []Mesh

func (m Meshes) Len() int {
	return len(m)
}

func (m Meshes) At(i int) Mesh {
	return m[i]
}
