package endfoot

import (
	"math"

	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/akmonengine/ngvgeom/monitoring"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

// DefaultLengthTolerance is the extent under which a compartment is considered empty
const DefaultLengthTolerance = 1e-8

// VasculatureSegment is a straight piece of a vessel medial axis
type VasculatureSegment struct {
	P0 mgl64.Vec3
	P1 mgl64.Vec3
}

// Compartment is the cylinder equivalent to an endfoot.
// Diameter reproduces the endfoot volume, Perimeter reproduces its area.
type Compartment struct {
	Length    float64
	Diameter  float64
	Perimeter float64
}

// Synthesizer computes endfoot compartments
type Synthesizer struct {
	// Tolerance on the compartment length below which the compartment is zeroed,
	// DefaultLengthTolerance when zero
	Tolerance float64
}

func (s Synthesizer) tolerance() float64 {
	if s.Tolerance == 0 {
		return DefaultLengthTolerance
	}
	return s.Tolerance
}

// NewSynthesizer creates a Synthesizer with DefaultLengthTolerance
func NewSynthesizer() Synthesizer {
	return Synthesizer{Tolerance: DefaultLengthTolerance}
}

// Synthesize returns the compartment of the endfoot mesh attached at reference
// on the vessel segment.
//
// The length is the extent of the mesh along the segment axis. The diameter and
// perimeter then invert V = π (d/2)² L and A = P L with V = area * thickness.
// Meshes that never grew, and meshes without extent along the axis, give a zero
// compartment.
func (s Synthesizer) Synthesize(segment VasculatureSegment, reference mgl64.Vec3, mesh Mesh) Compartment {
	if mesh.IsDegenerate() || len(mesh.Points) == 0 {
		monitoring.L().Info("mesh has no triangles, compartment set to zero", "endfoot", mesh.Index)
		return Compartment{}
	}

	axis := segment.P1.Sub(segment.P0)
	axisLength := axis.Len()
	if axisLength == 0 {
		monitoring.L().Info("vasculature segment has zero length, compartment set to zero", "endfoot", mesh.Index)
		return Compartment{}
	}
	axis = axis.Mul(1 / axisLength)

	projections := make([]float64, len(mesh.Points))
	for i, p := range mesh.Points {
		projections[i] = geometry.ScalarProjection(p.Sub(reference), axis)
	}

	length := floats.Max(projections) - floats.Min(projections)
	if length <= s.tolerance() {
		monitoring.L().Info("zero extent along the vessel axis, compartment set to zero",
			"endfoot", mesh.Index, "length", length)
		return Compartment{}
	}

	volume := mesh.Area * mesh.Thickness
	return Compartment{
		Length:    length,
		Diameter:  2 * math.Sqrt(volume/(math.Pi*length)),
		Perimeter: mesh.Area / length,
	}
}

// Synthesize uses a Synthesizer with DefaultLengthTolerance
func Synthesize(segment VasculatureSegment, reference mgl64.Vec3, mesh Mesh) Compartment {
	return NewSynthesizer().Synthesize(segment, reference, mesh)
}
