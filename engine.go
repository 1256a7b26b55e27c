// Package ngvgeom is the geometric core used while building the
// neuro-glia-vasculature: it annotates synapses and endfeet onto morphologies,
// derives endfoot compartments, and tests collisions between placement primitives.
//
// The Engine runs every batch operation over a pool of workers. Inputs are never
// modified and each element is computed independently.
package ngvgeom

import (
	"github.com/akmonengine/ngvgeom/endfoot"
)

const DEFAULT_WORKERS = 1

type Engine struct {
	// Number of goroutines sharing a batch
	Workers int
	// Compartment length under which an endfoot compartment is zeroed,
	// endfoot.DefaultLengthTolerance when zero
	LengthTolerance float64
}

// NewEngine creates an Engine from a configuration
func NewEngine(config Config) *Engine {
	return &Engine{
		Workers:         config.Workers,
		LengthTolerance: config.LengthTolerance,
	}
}

func (e *Engine) workers() int {
	return max(DEFAULT_WORKERS, e.Workers)
}

func (e *Engine) synthesizer() endfoot.Synthesizer {
	if e.LengthTolerance == 0 {
		return endfoot.NewSynthesizer()
	}
	return endfoot.Synthesizer{Tolerance: e.LengthTolerance}
}
