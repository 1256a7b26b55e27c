package ngvgeom

import (
	"fmt"

	"github.com/akmonengine/ngvgeom/endfoot"
	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// EndfootCompartments computes the compartment of every endfoot, pairing by position
// the vasculature segment, the endfoot touch point on the vessel surface and the mesh.
// It returns the parallel length, diameter and perimeter arrays.
func (e *Engine) EndfootCompartments(
	segments []endfoot.VasculatureSegment,
	references []mgl64.Vec3,
	meshes endfoot.MeshSource,
) (lengths, diameters, perimeters []float64, err error) {
	if meshes == nil {
		return nil, nil, nil, fmt.Errorf("no endfoot mesh source: %w", geometry.ErrShapeMismatch)
	}

	n := len(segments)
	if len(references) != n || meshes.Len() != n {
		return nil, nil, nil, fmt.Errorf("%d segments, %d reference points and %d meshes: %w",
			n, len(references), meshes.Len(), geometry.ErrShapeMismatch)
	}

	for i := 0; i < n; i++ {
		if err := meshes.At(i).Validate(); err != nil {
			return nil, nil, nil, err
		}
	}

	lengths = make([]float64, n)
	diameters = make([]float64, n)
	perimeters = make([]float64, n)

	synthesizer := e.synthesizer()
	task(e.workers(), n, func(i int) {
		c := synthesizer.Synthesize(segments[i], references[i], meshes.At(i))
		lengths[i], diameters[i], perimeters[i] = c.Length, c.Diameter, c.Perimeter
	})

	return lengths, diameters, perimeters, nil
}
