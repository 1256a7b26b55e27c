package annotation

import (
	"fmt"

	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/akmonengine/ngvgeom/morphology"
	"github.com/go-gl/mathgl/mgl64"
)

// EndfootAnnotator maps endfoot touch points to the terminal endfoot section
// whose last point is the closest.
type EndfootAnnotator struct {
	index      *Index
	sectionIDs []int
}

// NewEndfootAnnotator indexes the last point of every childless endfoot section.
func NewEndfootAnnotator(tree morphology.Tree) (*EndfootAnnotator, error) {
	terminals := morphology.Filter(morphology.Walk(tree), morphology.IsTerminalEndfoot)

	points := make([]mgl64.Vec3, len(terminals))
	sectionIDs := make([]int, len(terminals))
	for i, section := range terminals {
		if len(section.Points) == 0 {
			return nil, fmt.Errorf("endfoot section %d has no points: %w", section.ID, geometry.ErrShapeMismatch)
		}
		points[i] = section.LastPoint()
		sectionIDs[i] = section.ID
	}

	index, err := NewIndex(points)
	if err != nil {
		return nil, fmt.Errorf("no terminal endfoot section: %w", err)
	}

	return &EndfootAnnotator{index: index, sectionIDs: sectionIDs}, nil
}

// SectionID returns the id of the terminal endfoot section closest to point
func (a *EndfootAnnotator) SectionID(point mgl64.Vec3) int {
	row, _ := a.index.Nearest(point)
	return a.sectionIDs[row]
}

// SynapseAnnotator maps synapse positions to the segment whose midpoint is the closest.
type SynapseAnnotator struct {
	index    *Index
	segments []morphology.Segment
}

// NewSynapseAnnotator indexes the midpoints of an unwrapped segment table.
func NewSynapseAnnotator(segments []morphology.Segment) (*SynapseAnnotator, error) {
	midpoints := make([]mgl64.Vec3, len(segments))
	for i, segment := range segments {
		midpoints[i] = segment.Midpoint
	}

	index, err := NewIndex(midpoints)
	if err != nil {
		return nil, fmt.Errorf("no segment to annotate with: %w", err)
	}

	return &SynapseAnnotator{index: index, segments: segments}, nil
}

// Segment returns the segment row closest to point
func (a *SynapseAnnotator) Segment(point mgl64.Vec3) morphology.Segment {
	row, _ := a.index.Nearest(point)
	return a.segments[row]
}
