package ngvgeom

import (
	"github.com/akmonengine/ngvgeom/annotation"
	"github.com/akmonengine/ngvgeom/morphology"
	"github.com/go-gl/mathgl/mgl64"
)

// Unwrap flattens the morphology into its segment table, one section per work item.
// Rows are grouped by section in morphology.Walk order, whatever the number of workers.
func (e *Engine) Unwrap(tree morphology.Tree) ([]morphology.Segment, error) {
	sections := morphology.Walk(tree)
	perSection := make([][]morphology.Segment, len(sections))
	errs := make([]error, len(sections))

	task(e.workers(), len(sections), func(i int) {
		perSection[i], errs[i] = morphology.UnwrapSection(sections[i])
	})

	total := 0
	for i := range sections {
		if errs[i] != nil {
			return nil, errs[i]
		}
		total += len(perSection[i])
	}
	if total == 0 {
		return nil, morphology.ErrEmptyMorphology
	}

	segments := make([]morphology.Segment, 0, total)
	for _, s := range perSection {
		segments = append(segments, s...)
	}
	return segments, nil
}

// AnnotateEndfeet returns, for every endfoot touch point, the id of the closest
// terminal endfoot section of the morphology.
func (e *Engine) AnnotateEndfeet(tree morphology.Tree, points []mgl64.Vec3) ([]int, error) {
	annotator, err := annotation.NewEndfootAnnotator(tree)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]int, len(points))
	task(e.workers(), len(points), func(i int) {
		sectionIDs[i] = annotator.SectionID(points[i])
	})
	return sectionIDs, nil
}

// AnnotateSynapses returns, for every synapse position, the closest segment of the
// morphology with its section id, segment id, offset and section position.
func (e *Engine) AnnotateSynapses(tree morphology.Tree, points []mgl64.Vec3) ([]morphology.Segment, error) {
	segments, err := e.Unwrap(tree)
	if err != nil {
		return nil, err
	}

	annotator, err := annotation.NewSynapseAnnotator(segments)
	if err != nil {
		return nil, err
	}

	rows := make([]morphology.Segment, len(points))
	task(e.workers(), len(points), func(i int) {
		rows[i] = annotator.Segment(points[i])
	})
	return rows, nil
}
