package spring

import (
	"fmt"
	"math"

	ifmt "github.com/KevinOConnor/reprap-test/internal/fmt"
)

// Connector selects how the head gets between disjoint strokes of the
// pattern.
type Connector string

const (
	// ConnectorLift hops between strokes: dwell, raise Z, planar travel,
	// lower Z, dwell.
	ConnectorLift Connector = "lift"
	// ConnectorSemicircle keeps the nozzle down and draws the whole pattern
	// in-plane, joining anti-parallel lanes with semicircular turns.
	ConnectorSemicircle Connector = "semicircle"
)

func ParseConnector(value string) (Connector, error) {
	switch Connector(value) {
	case ConnectorLift, ConnectorSemicircle:
		return Connector(value), nil
	}
	return "", fmt.Errorf("unknown connector strategy %#v: must be %q or %q", value, ConnectorLift, ConnectorSemicircle)
}

// Config holds every parameter of the calibration pattern. Lengths are
// millimeters, speeds millimeters per second, dwells milliseconds.
type Config struct {
	// FilamentDiameter is the feedstock diameter.
	FilamentDiameter float64
	// ExtrudeWidth is the width of the deposited bead.
	ExtrudeWidth float64
	// LayerHeight is the Z height the pattern is printed at.
	LayerHeight float64

	// Bed size, used to center the pattern after homing.
	BedX float64
	BedY float64

	// TestSpeeds are the extrusion speeds under test, one lane pair each,
	// printed in the given order.
	TestSpeeds []float64
	// TestLength is the length of a single test segment.
	TestLength float64
	// TestTries is how many extruding segments each lane row has.
	TestTries int

	// LaneWidth is the Y distance between adjacent lane rows, RulerWidth the
	// length of the ruler marks at the pattern's top and bottom edges.
	LaneWidth  float64
	RulerWidth float64
	RulerSpeed float64

	RepositionSpeed  float64
	RepositionZSpeed float64
	// RepositionLift is how far above LayerHeight the head travels while
	// repositioning with ConnectorLift.
	RepositionLift float64

	// Dwells before and after each repositioning, ConnectorLift only.
	StartDwell int
	EndDwell   int

	Connector Connector
	// SemicirclePoints is how many angle samples approximate each
	// semicircular turn, ConnectorSemicircle only.
	SemicirclePoints int
}

func DefaultConfig() *Config {
	return &Config{
		FilamentDiameter: 1.75,
		ExtrudeWidth:     0.4,
		LayerHeight:      0.3,
		BedX:             200,
		BedY:             250,
		TestSpeeds:       []float64{20, 40, 60, 80, 100, 120},
		TestLength:       20,
		TestTries:        3,
		LaneWidth:        5,
		RulerWidth:       5,
		RulerSpeed:       10,
		RepositionSpeed:  40,
		RepositionZSpeed: 10,
		RepositionLift:   1,
		StartDwell:       500,
		EndDwell:         500,
		Connector:        ConnectorLift,
		SemicirclePoints: 10,
	}
}

// ExtrusionMultiplier converts planar travel distance into filament feed
// distance: the bead cross-section (layer height times bead width) over the
// feedstock cross-section.
func (c *Config) ExtrusionMultiplier() float64 {
	filamentArea := math.Pi * (c.FilamentDiameter / 2) * (c.FilamentDiameter / 2)
	return c.LayerHeight * c.ExtrudeWidth / filamentArea
}

// PatternSize gives the bounding box of the whole pattern: the test rows
// plus one spare segment on each side for the lead-in travels, and the lane
// rows plus the rulers and their clearance.
func (c *Config) PatternSize() (totalX, totalY float64) {
	totalX = c.TestLength * float64(2*c.TestTries+1)
	totalY = float64(2*len(c.TestSpeeds)+1)*c.LaneWidth + 3*c.RulerWidth
	return totalX, totalY
}

// CenterOffset gives the base offset that centers a pattern of the given
// size on the given bed.
func CenterOffset(bedX, bedY, totalX, totalY float64) (x, y float64) {
	return (bedX - totalX) / 2, (bedY - totalY) / 2
}

//gocyclo:ignore
func (c *Config) Validate() error {
	if c.FilamentDiameter <= 0 {
		return fmt.Errorf("filament diameter must be positive")
	}
	if c.ExtrudeWidth <= 0 {
		return fmt.Errorf("extrude width must be positive")
	}
	if c.LayerHeight <= 0 {
		return fmt.Errorf("layer height must be positive")
	}
	if c.BedX <= 0 || c.BedY <= 0 {
		return fmt.Errorf("bed size must be positive")
	}
	if len(c.TestSpeeds) == 0 {
		return fmt.Errorf("at least one test speed is required")
	}
	for _, speed := range c.TestSpeeds {
		if speed <= 0 {
			return fmt.Errorf("test speeds must be positive")
		}
	}
	if c.TestLength <= 0 {
		return fmt.Errorf("test length must be positive")
	}
	if c.TestTries < 1 {
		return fmt.Errorf("test tries must be at least 1")
	}
	if c.LaneWidth <= 0 {
		return fmt.Errorf("lane width must be positive")
	}
	if c.RulerWidth <= 0 {
		return fmt.Errorf("ruler width must be positive")
	}
	if c.RulerSpeed <= 0 || c.RepositionSpeed <= 0 || c.RepositionZSpeed <= 0 {
		return fmt.Errorf("ruler and reposition speeds must be positive")
	}
	if c.RepositionLift < 0 {
		return fmt.Errorf("reposition lift can't be negative")
	}
	if c.StartDwell < 0 || c.EndDwell < 0 {
		return fmt.Errorf("dwells can't be negative")
	}
	if _, err := ParseConnector(string(c.Connector)); err != nil {
		return err
	}
	if c.Connector == ConnectorSemicircle && c.SemicirclePoints < 1 {
		return fmt.Errorf("semicircle points must be at least 1")
	}
	totalX, totalY := c.PatternSize()
	if totalX > c.BedX || totalY > c.BedY {
		return fmt.Errorf(
			"pattern %sx%s does not fit bed %sx%s",
			ifmt.SprintFloat(totalX, 4), ifmt.SprintFloat(totalY, 4),
			ifmt.SprintFloat(c.BedX, 4), ifmt.SprintFloat(c.BedY, 4),
		)
	}
	return nil
}
