package main

import (
	"fmt"
	"log"
	"os"

	"github.com/akmonengine/ngvgeom"
	"github.com/akmonengine/ngvgeom/collision"
	"github.com/akmonengine/ngvgeom/endfoot"
	"github.com/akmonengine/ngvgeom/morphology"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupAstrocyte creates a soma with one process forking into two endfeet
func SetupAstrocyte() *morphology.Morphology {
	soma := morphology.NewSection(0, morphology.SectionTypeSoma, []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}})
	process := soma.AddChild(morphology.NewSection(1, morphology.SectionTypeBasalDendrite,
		[]mgl64.Vec3{{2, 0, 0}, {6, 1, 0}, {10, 0, 0}}))
	process.AddChild(morphology.NewSection(2, morphology.SectionTypeEndfoot,
		[]mgl64.Vec3{{10, 0, 0}, {14, 4, 0}}))
	process.AddChild(morphology.NewSection(3, morphology.SectionTypeEndfoot,
		[]mgl64.Vec3{{10, 0, 0}, {14, -4, 0}}))

	return &morphology.Morphology{Roots: []*morphology.Section{soma}}
}

// loadConfig reads ngv.json then .env when they exist
func loadConfig() ngvgeom.Config {
	config := ngvgeom.DefaultConfig()

	if _, err := os.Stat("ngv.json"); err == nil {
		if config, err = ngvgeom.LoadConfig("ngv.json"); err != nil {
			log.Fatal(err)
		}
	}
	if _, err := os.Stat(".env"); err == nil {
		if config, err = ngvgeom.LoadEnv(".env", config); err != nil {
			log.Fatal(err)
		}
	}
	return config
}

func main() {
	config := loadConfig()
	engine := ngvgeom.NewEngine(config)
	astrocyte := SetupAstrocyte()

	fmt.Printf("Configuration: %d workers, length tolerance %g\n", config.Workers, config.LengthTolerance)

	// Endfeet
	touches := []mgl64.Vec3{{14.5, 4.2, 0}, {13.8, -4.5, 0.3}}
	sectionIDs, err := engine.AnnotateEndfeet(astrocyte, touches)
	if err != nil {
		log.Fatal(err)
	}
	for i, id := range sectionIDs {
		fmt.Printf("  endfoot touch %v -> section %d\n", touches[i], id)
	}

	// Synapses
	synapses := []mgl64.Vec3{{1, 0.2, 0}, {7, 1.5, 0}, {12, 2.5, 0.5}}
	rows, err := engine.AnnotateSynapses(astrocyte, synapses)
	if err != nil {
		log.Fatal(err)
	}
	for i, row := range rows {
		fmt.Printf("  synapse %v -> section %d segment %d offset %.3f position %.3f\n",
			synapses[i], row.SectionID, row.SegmentID, row.Offset, row.SectionPosition)
	}

	// Endfoot compartments
	mesh := endfoot.Mesh{
		Index:     0,
		Points:    []mgl64.Vec3{{15, 3, 0}, {15, 5, 0}, {15, 4, 1.5}},
		Triangles: [][3]int{{0, 1, 2}},
		Thickness: 0.3,
	}
	mesh.Area = mesh.SurfaceArea()
	mesh.UnreducedArea = mesh.Area

	lengths, diameters, perimeters, err := engine.EndfootCompartments(
		[]endfoot.VasculatureSegment{{P0: mgl64.Vec3{16, 0, 0}, P1: mgl64.Vec3{16, 10, 0}}, {P0: mgl64.Vec3{16, -10, 0}, P1: mgl64.Vec3{16, 0, 0}}},
		[]mgl64.Vec3{{15, 4, 0}, {15, -4, 0}},
		endfoot.Meshes{mesh, {Index: 1}},
	)
	if err != nil {
		log.Fatal(err)
	}
	for i := range lengths {
		fmt.Printf("  compartment %d: length %.3f diameter %.3f perimeter %.3f\n", i, lengths[i], diameters[i], perimeters[i])
	}

	// Placement checks
	hits, err := engine.SphereVsSpheres(mgl64.Vec3{0, 0, 0}, 1, []mgl64.Vec3{{2, 0, 0}, {5, 0, 0}}, []float64{1, 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  sphere collisions: %v\n", hits)

	capsuleHits, err := engine.SphereVsCapsules(mgl64.Vec3{16, 5, 2}, 0.5,
		[]mgl64.Vec3{{16, 0, 0}}, []mgl64.Vec3{{16, 10, 0}}, []float64{1.5}, []float64{1.5})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  vessel collisions: %v\n", capsuleHits)

	bounds := collision.NewBoxShape(mgl64.Vec3{8, 0, 0}, mgl64.Vec3{10, 10, 10}, mgl64.QuatIdent())
	inside, err := engine.ConvexShapeVsPoint(bounds, mgl64.Vec3{0, 0, 0})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  soma inside bounding region: %v\n", inside)
}
