package morphology

import (
	"errors"
	"fmt"

	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyMorphology is returned when a morphology yields no segment at all
	ErrEmptyMorphology = errors.New("morphology has no segments")
	// ErrZeroLengthSection is returned when every point of a section coincides,
	// which leaves the normalized path position undefined.
	ErrZeroLengthSection = errors.New("section has zero length")
)

// Segment is one consecutive pair of points of a section, located by its midpoint.
type Segment struct {
	Midpoint  mgl64.Vec3
	SectionID int
	SegmentID int
	// Offset is the distance from the segment start to its midpoint
	Offset float64
	// SectionPosition is the path length from the section start to the midpoint,
	// divided by the section length
	SectionPosition float64
}

// UnwrapSection returns one Segment per consecutive point pair of the section.
func UnwrapSection(section *Section) ([]Segment, error) {
	n := len(section.Points) - 1
	if n < 1 {
		return nil, fmt.Errorf("section %d has %d points, at least 2 required: %w",
			section.ID, len(section.Points), geometry.ErrShapeMismatch)
	}

	lengths := make([]float64, n)
	for i := 0; i < n; i++ {
		lengths[i] = geometry.Distance(section.Points[i], section.Points[i+1])
	}

	totalLength := floats.Sum(lengths)
	if totalLength == 0 {
		return nil, fmt.Errorf("section %d: %w", section.ID, ErrZeroLengthSection)
	}

	// path length preceding each segment, the first one starts at 0
	preceding := make([]float64, n)
	floats.CumSum(preceding[1:], lengths[:n-1])

	offsets := make([]float64, n)
	copy(offsets, lengths)
	floats.Scale(0.5, offsets)

	positions := make([]float64, n)
	floats.AddTo(positions, preceding, offsets)
	floats.Scale(1/totalLength, positions)

	segments := make([]Segment, n)
	for i := 0; i < n; i++ {
		segments[i] = Segment{
			Midpoint:        geometry.Midpoint(section.Points[i], section.Points[i+1]),
			SectionID:       section.ID,
			SegmentID:       i,
			Offset:          offsets[i],
			SectionPosition: positions[i],
		}
	}

	return segments, nil
}

// Unwrap flattens every section of the tree, in Walk order, into a single segment table.
func Unwrap(tree Tree) ([]Segment, error) {
	var segments []Segment
	for _, section := range Walk(tree) {
		sectionSegments, err := UnwrapSection(section)
		if err != nil {
			return nil, err
		}
		segments = append(segments, sectionSegments...)
	}

	if len(segments) == 0 {
		return nil, ErrEmptyMorphology
	}
	return segments, nil
}
