package ngvgeom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/ngvgeom/collision"
	"github.com/akmonengine/ngvgeom/endfoot"
	"github.com/akmonengine/ngvgeom/geometry"
	"github.com/akmonengine/ngvgeom/monitoring"
	"github.com/akmonengine/ngvgeom/morphology"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomAstrocyte grows a random tree whose leaves are endfeet
func randomAstrocyte(r *rand.Rand, depth int) *morphology.Morphology {
	nextID := 0
	var grow func(start mgl64.Vec3, level int) *morphology.Section
	grow = func(start mgl64.Vec3, level int) *morphology.Section {
		points := []mgl64.Vec3{start}
		for i := 0; i < 2+r.Intn(4); i++ {
			step := mgl64.Vec3{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()}
			points = append(points, points[len(points)-1].Add(step))
		}

		sectionType := morphology.SectionTypeBasalDendrite
		if level == depth {
			sectionType = morphology.SectionTypeEndfoot
		}
		section := morphology.NewSection(nextID, sectionType, points)
		nextID++

		if level < depth {
			for i := 0; i < 2; i++ {
				section.AddChild(grow(section.LastPoint(), level+1))
			}
		}
		return section
	}

	return &morphology.Morphology{Roots: []*morphology.Section{grow(mgl64.Vec3{}, 0)}}
}

func randomPoints(r *rand.Rand, n int, scale float64) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, n)
	for i := range points {
		points[i] = mgl64.Vec3{r.NormFloat64() * scale, r.NormFloat64() * scale, r.NormFloat64() * scale}
	}
	return points
}

func TestUnwrapMatchesSerial(t *testing.T) {
	tree := randomAstrocyte(rand.New(rand.NewSource(1)), 5)

	expected, err := morphology.Unwrap(tree)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 7} {
		segments, err := (&Engine{Workers: workers}).Unwrap(tree)
		require.NoError(t, err)
		if diff := cmp.Diff(expected, segments); diff != "" {
			t.Errorf("workers=%d: Unwrap() mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestUnwrapErrors(t *testing.T) {
	engine := &Engine{Workers: 4}

	_, err := engine.Unwrap(&morphology.Morphology{})
	assert.ErrorIs(t, err, morphology.ErrEmptyMorphology)

	root := morphology.NewSection(0, morphology.SectionTypeSoma, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}})
	root.AddChild(morphology.NewSection(1, morphology.SectionTypeAxon, []mgl64.Vec3{{1, 0, 0}}))
	_, err = engine.Unwrap(&morphology.Morphology{Roots: []*morphology.Section{root}})
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

func TestAnnotateSynapses(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	tree := randomAstrocyte(r, 4)
	engine := &Engine{Workers: 4}

	segments, err := engine.Unwrap(tree)
	require.NoError(t, err)

	// a synapse placed on a midpoint resolves to that very segment
	points := make([]mgl64.Vec3, len(segments))
	for i, s := range segments {
		points[i] = s.Midpoint
	}
	rows, err := engine.AnnotateSynapses(tree, points)
	require.NoError(t, err)
	if diff := cmp.Diff(segments, rows); diff != "" {
		t.Errorf("AnnotateSynapses() mismatch (-want +got):\n%s", diff)
	}

	// random synapses resolve to the closest midpoint
	queries := randomPoints(r, 100, 3)
	rows, err = engine.AnnotateSynapses(tree, queries)
	require.NoError(t, err)
	require.Len(t, rows, len(queries))
	for i, q := range queries {
		best := math.Inf(1)
		for _, s := range segments {
			best = math.Min(best, s.Midpoint.Sub(q).Len())
		}
		assert.InDelta(t, best, rows[i].Midpoint.Sub(q).Len(), 1e-12)
	}
}

func TestAnnotateSynapsesEmpty(t *testing.T) {
	_, err := (&Engine{}).AnnotateSynapses(&morphology.Morphology{}, []mgl64.Vec3{{0, 0, 0}})
	assert.ErrorIs(t, err, morphology.ErrEmptyMorphology)
}

func TestAnnotateEndfeet(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	tree := randomAstrocyte(r, 3)
	terminals := morphology.Filter(morphology.Walk(tree), morphology.IsTerminalEndfoot)
	require.Len(t, terminals, 8)

	points := make([]mgl64.Vec3, 0, len(terminals))
	expected := make([]int, 0, len(terminals))
	for i := len(terminals) - 1; i >= 0; i-- {
		points = append(points, terminals[i].LastPoint())
		expected = append(expected, terminals[i].ID)
	}

	sectionIDs, err := (&Engine{Workers: 3}).AnnotateEndfeet(tree, points)
	require.NoError(t, err)
	assert.Equal(t, expected, sectionIDs)
}

func TestAnnotateEndfeetWithoutEndfeet(t *testing.T) {
	root := morphology.NewSection(0, morphology.SectionTypeSoma, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}})
	_, err := (&Engine{}).AnnotateEndfeet(&morphology.Morphology{Roots: []*morphology.Section{root}}, nil)
	assert.Error(t, err)
}

func TestEndfootCompartments(t *testing.T) {
	original := monitoring.L()
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(original) })

	segment := endfoot.VasculatureSegment{P0: mgl64.Vec3{0, 1, 0}, P1: mgl64.Vec3{0, -1, 0}}
	mesh := endfoot.Mesh{
		Index:     0,
		Points:    []mgl64.Vec3{{0.25, 0.75, 0}, {0.25, -0.75, 0}, {0.25, 0, 0.2}},
		Triangles: [][3]int{{0, 1, 2}},
		Area:      3,
		Thickness: 0.5,
	}
	empty := endfoot.Mesh{Index: 1}

	engine := NewEngine(DefaultConfig())
	lengths, diameters, perimeters, err := engine.EndfootCompartments(
		[]endfoot.VasculatureSegment{segment, segment, segment},
		[]mgl64.Vec3{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
		endfoot.Meshes{mesh, empty, mesh},
	)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1.5, 0, 1.5}, lengths, 1e-12)
	assert.InDeltaSlice(t, []float64{2, 0, 2}, perimeters, 1e-12)
	d := 2 * math.Sqrt(1.5/(math.Pi*1.5))
	assert.InDeltaSlice(t, []float64{d, 0, d}, diameters, 1e-12)
}

func TestEndfootCompartmentsZeroValueEngine(t *testing.T) {
	original := monitoring.L()
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(original) })

	rotation := geometry.Transform{Rotation: mgl64.QuatRotate(0.7, mgl64.Vec3{1, 2, 3}.Normalize())}
	segment := endfoot.VasculatureSegment{
		P0: rotation.Apply(mgl64.Vec3{0, 1, 0}),
		P1: rotation.Apply(mgl64.Vec3{0, -1, 0}),
	}
	// every point lies in the plane orthogonal to the vessel axis
	flat := endfoot.Mesh{
		Points:    rotation.ApplyAll([]mgl64.Vec3{{1, 0, 0}, {0, 0, 1}, {2, 0, 3}}),
		Triangles: [][3]int{{0, 1, 2}},
		Area:      2,
		Thickness: 0.5,
	}

	for _, engine := range []*Engine{{}, NewEngine(DefaultConfig())} {
		lengths, diameters, perimeters, err := engine.EndfootCompartments(
			[]endfoot.VasculatureSegment{segment},
			[]mgl64.Vec3{rotation.Apply(mgl64.Vec3{1, 0, 0})},
			endfoot.Meshes{flat},
		)
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, lengths)
		assert.Equal(t, []float64{0}, diameters)
		assert.Equal(t, []float64{0}, perimeters)
	}
}

func TestEndfootCompartmentsErrors(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	segment := endfoot.VasculatureSegment{P0: mgl64.Vec3{0, 0, 0}, P1: mgl64.Vec3{1, 0, 0}}

	_, _, _, err := engine.EndfootCompartments(
		[]endfoot.VasculatureSegment{segment},
		[]mgl64.Vec3{{0, 0, 0}, {0, 0, 0}},
		endfoot.Meshes{{}},
	)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)

	broken := endfoot.Mesh{Points: []mgl64.Vec3{{0, 0, 0}}, Triangles: [][3]int{{0, 1, 2}}, Area: 1, Thickness: 1}
	_, _, _, err = engine.EndfootCompartments(
		[]endfoot.VasculatureSegment{segment},
		[]mgl64.Vec3{{0, 0, 0}},
		endfoot.Meshes{broken},
	)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)

	_, _, _, err = engine.EndfootCompartments(nil, nil, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

func TestSphereVsSpheres(t *testing.T) {
	engine := &Engine{Workers: 2}

	got, err := engine.SphereVsSpheres(mgl64.Vec3{0, 0, 0}, 1,
		[]mgl64.Vec3{{3, 0, 0}, {3 + 1e-9, 0, 0}, {0, 0.5, 0}, {0, 0, -10}},
		[]float64{2, 2, 0.1, 1},
	)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, got)

	_, err = engine.SphereVsSpheres(mgl64.Vec3{}, 1, []mgl64.Vec3{{}}, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

func TestSphereVsCapsules(t *testing.T) {
	engine := &Engine{Workers: 3}

	got, err := engine.SphereVsCapsules(mgl64.Vec3{5, 3, 0}, 1,
		[]mgl64.Vec3{{0, 0, 0}, {0, 0, 0}, {20, 0, 0}},
		[]mgl64.Vec3{{10, 0, 0}, {10, 0, 0}, {30, 0, 0}},
		[]float64{1, 1, 5},
		[]float64{3, 2.9, 5},
	)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, got)

	_, err = engine.SphereVsCapsules(mgl64.Vec3{}, 1, []mgl64.Vec3{{}}, []mgl64.Vec3{{}}, []float64{1}, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

func TestConvexShapeVsSpheres(t *testing.T) {
	engine := &Engine{Workers: 4}
	box := collision.NewBoxShape(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())

	// one sphere per face, in face order: +X, -X, +Y, -Y, +Z, -Z
	centers := []mgl64.Vec3{{3, 0, 0}, {-2, 0, 0}, {0, 1.5, 0}, {0, -5, 0}, {0, 0, 0}, {0, 0, -2.5}}
	radii := []float64{1, 1, 0.1, 1, 0.1, 1}

	got, err := engine.ConvexShapeVsSpheres(box, centers, radii)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, false, true, false}, got)

	_, err = engine.ConvexShapeVsSpheres(box, centers[:5], radii[:5])
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)

	_, err = engine.ConvexShapeVsSpheres(collision.ConvexShape{FaceNormals: []mgl64.Vec3{{1, 0, 0}}}, nil, nil)
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}

func TestConvexShapeVsPoint(t *testing.T) {
	engine := &Engine{}
	box := collision.NewBoxShape(mgl64.Vec3{2, 2, 2}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())

	inside, err := engine.ConvexShapeVsPoint(box, mgl64.Vec3{2.5, 2.5, 1})
	require.NoError(t, err)
	assert.True(t, inside)

	inside, err = engine.ConvexShapeVsPoint(box, mgl64.Vec3{0, 0, 0})
	require.NoError(t, err)
	assert.False(t, inside)

	_, err = engine.ConvexShapeVsPoint(collision.ConvexShape{FaceVertices: []mgl64.Vec3{{}}}, mgl64.Vec3{})
	assert.ErrorIs(t, err, geometry.ErrShapeMismatch)
}
