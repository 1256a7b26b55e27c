// Package annotation resolves query points to the closest element of a
// morphology: terminal endfoot sections, or segments.
package annotation

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// ErrEmptyIndex is returned when an index would be built over no point
var ErrEmptyIndex = errors.New("spatial index has no points")

// Index is an exact nearest-neighbour index over a fixed set of 3D points.
// It is immutable once built and safe for concurrent queries.
type Index struct {
	tree *kdtree.Tree
	size int
}

// NewIndex builds the index. The slice is copied, the caller keeps ownership.
func NewIndex(points []mgl64.Vec3) (*Index, error) {
	if len(points) == 0 {
		return nil, ErrEmptyIndex
	}

	rows := make(indexedPoints, len(points))
	for i, p := range points {
		rows[i] = indexedPoint{position: p, row: i}
	}

	return &Index{tree: kdtree.New(rows, false), size: len(points)}, nil
}

// Len returns the number of indexed points
func (idx *Index) Len() int {
	return idx.size
}

// Nearest returns the build-order row of the closest indexed point and its distance.
// Among points at the same distance, the lowest row wins.
func (idx *Index) Nearest(q mgl64.Vec3) (int, float64) {
	query := indexedPoint{position: q}
	nearest, distSquared := idx.tree.Nearest(query)
	best := nearest.(indexedPoint).row

	// collect every point at the same distance to resolve ties deterministically
	keeper := kdtree.NewDistKeeper(distSquared)
	idx.tree.NearestSet(keeper, query)
	for _, candidate := range keeper.Heap {
		if candidate.Comparable == nil {
			continue
		}
		if row := candidate.Comparable.(indexedPoint).row; row < best {
			best = row
		}
	}

	return best, math.Sqrt(distSquared)
}

// indexedPoint remembers its build-order row, kdtree.New reorders the points.
type indexedPoint struct {
	position mgl64.Vec3
	row      int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	return p.position[d] - q.position[d]
}

func (p indexedPoint) Dims() int {
	return 3
}

// Distance returns the squared euclidean distance
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	d := p.position.Sub(c.(indexedPoint).position)
	return d.Dot(d)
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return plane{points: p, dim: d}.Pivot()
}
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for the median pivot
type plane struct {
	points indexedPoints
	dim    kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].position[p.dim] < p.points[j].position[p.dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p plane) Len() int { return len(p.points) }
