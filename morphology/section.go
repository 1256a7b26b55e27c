// Package morphology describes a neuron or astrocyte skeleton as a tree of
// sections, and flattens it into a table of segments.
package morphology

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// SectionType is the biological tag of a section
type SectionType int

const (
	SectionTypeSoma SectionType = iota + 1
	SectionTypeAxon
	SectionTypeBasalDendrite
	SectionTypeApicalDendrite
	// SectionTypeEndfoot marks the perivascular process ending on a vessel
	SectionTypeEndfoot
)

// sectionTypeTags maps the integer tag stored in morphology files to a SectionType
var sectionTypeTags = map[int]SectionType{
	1: SectionTypeSoma,
	2: SectionTypeAxon,
	3: SectionTypeBasalDendrite,
	4: SectionTypeApicalDendrite,
	5: SectionTypeEndfoot,
}

// ParseSectionType converts a file tag into a SectionType.
func ParseSectionType(tag int) (SectionType, error) {
	sectionType, ok := sectionTypeTags[tag]
	if !ok {
		return 0, fmt.Errorf("unknown section type tag %d", tag)
	}
	return sectionType, nil
}

func (t SectionType) String() string {
	switch t {
	case SectionTypeSoma:
		return "soma"
	case SectionTypeAxon:
		return "axon"
	case SectionTypeBasalDendrite:
		return "basal_dendrite"
	case SectionTypeApicalDendrite:
		return "apical_dendrite"
	case SectionTypeEndfoot:
		return "endfoot"
	default:
		return fmt.Sprintf("SectionType(%d)", int(t))
	}
}

// Section is one unbranched polyline of the morphology tree.
// Sections are not modified once the morphology is loaded.
type Section struct {
	ID       int
	Type     SectionType
	Points   []mgl64.Vec3
	Children []*Section
	Parent   *Section
}

// NewSection creates a section without parent or children
func NewSection(id int, sectionType SectionType, points []mgl64.Vec3) *Section {
	return &Section{ID: id, Type: sectionType, Points: points}
}

// AddChild links child below s and returns the child
func (s *Section) AddChild(child *Section) *Section {
	child.Parent = s
	s.Children = append(s.Children, child)
	return child
}

// IsLeaf reports whether the section has no children
func (s *Section) IsLeaf() bool {
	return len(s.Children) == 0
}

// LastPoint returns the distal end of the section
func (s *Section) LastPoint() mgl64.Vec3 {
	return s.Points[len(s.Points)-1]
}

// Tree is anything that exposes the root sections of a morphology.
type Tree interface {
	RootSections() []*Section
}

// Morphology is the in-memory Tree implementation
type Morphology struct {
	Roots []*Section
}

func (m *Morphology) RootSections() []*Section {
	return m.Roots
}

// Walk returns every section of the tree in depth-first pre-order.
// Roots are visited in order and children in insertion order, so the result is stable.
func Walk(tree Tree) []*Section {
	var sections []*Section
	stack := make([]*Section, 0, 16)

	roots := tree.RootSections()
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		section := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sections = append(sections, section)

		for i := len(section.Children) - 1; i >= 0; i-- {
			stack = append(stack, section.Children[i])
		}
	}

	return sections
}

// Predicate selects sections in Filter
type Predicate func(*Section) bool

// Filter keeps the sections matching every predicate, preserving order
func Filter(sections []*Section, predicates ...Predicate) []*Section {
	kept := make([]*Section, 0, len(sections))
	for _, section := range sections {
		match := true
		for _, predicate := range predicates {
			if !predicate(section) {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, section)
		}
	}
	return kept
}

// IsType returns a predicate matching sections of the given type
func IsType(sectionType SectionType) Predicate {
	return func(s *Section) bool {
		return s.Type == sectionType
	}
}

// IsLeaf matches sections without children
func IsLeaf(s *Section) bool {
	return s.IsLeaf()
}

// IsTerminalEndfoot matches endfoot sections ending the tree
func IsTerminalEndfoot(s *Section) bool {
	return s.Type == SectionTypeEndfoot && s.IsLeaf()
}
