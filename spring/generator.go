package spring

import (
	"math"

	"github.com/KevinOConnor/reprap-test/gcode"
)

// Generator emits the calibration pattern as g-code. It owns the cursor and
// is not safe for concurrent use; every Generate call starts from a fresh
// cursor so the output is identical across runs.
type Generator struct {
	config *Config
	mult   float64
	baseX  float64
	baseY  float64
	cursor Cursor
	w      *gcode.Writer
}

// NewGenerator validates the configuration and computes the base offset
// that centers the pattern on the bed. No output happens until Generate.
func NewGenerator(config *Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	totalX, totalY := config.PatternSize()
	baseX, baseY := CenterOffset(config.BedX, config.BedY, totalX, totalY)
	return &Generator{
		config: config,
		mult:   config.ExtrusionMultiplier(),
		baseX:  baseX,
		baseY:  baseY,
	}, nil
}

// BaseOffset returns the bed coordinates of the pattern's origin corner.
func (g *Generator) BaseOffset() (x, y float64) {
	return g.baseX, g.baseY
}

func (g *Generator) comment(text string) error {
	return g.w.WriteBlock(gcode.NewBlockComment(text))
}

// setSpeed emits a feed rate command. speed is mm/s, the emitted F word is
// mm/min.
func (g *Generator) setSpeed(speed float64) error {
	return g.w.WriteBlock(gcode.NewBlockCommand(
		gcode.NewWord('G', 1),
		gcode.NewWord('F', speed*60),
	))
}

func (g *Generator) dwell(milliseconds int) error {
	return g.w.WriteBlock(gcode.NewBlockCommand(
		gcode.NewWord('G', 4),
		gcode.NewWordInt('P', milliseconds),
	))
}

func (g *Generator) moveZ(z float64) error {
	return g.w.WriteBlock(gcode.NewBlockCommand(
		gcode.NewWord('G', 1),
		gcode.NewWord('Z', z),
	))
}

// moveAbs emits a travel move to (x, y) in pattern coordinates. The stored
// feed length is untouched.
func (g *Generator) moveAbs(x, y float64) error {
	err := g.w.WriteBlock(gcode.NewBlockCommand(
		gcode.NewWord('G', 1),
		gcode.NewWord('X', g.cursor.BaseX+x),
		gcode.NewWord('Y', g.cursor.BaseY+y),
	))
	if err != nil {
		return err
	}
	g.cursor.X = x
	g.cursor.Y = y
	return nil
}

// moveAbsExtrude emits a move to (x, y) extruding up to the absolute feed
// length e, which the cursor records as-is.
func (g *Generator) moveAbsExtrude(x, y, e float64) error {
	err := g.w.WriteBlock(gcode.NewBlockCommand(
		gcode.NewWord('G', 1),
		gcode.NewWord('X', g.cursor.BaseX+x),
		gcode.NewWord('Y', g.cursor.BaseY+y),
		gcode.NewWord('E', e),
	))
	if err != nil {
		return err
	}
	g.cursor.X = x
	g.cursor.Y = y
	g.cursor.E = e
	return nil
}

func (g *Generator) moveRel(dx, dy float64) error {
	return g.moveAbs(g.cursor.X+dx, g.cursor.Y+dy)
}

// moveRelExtrude moves by (dx, dy) depositing a bead along the way: the
// feed grows by the travel distance times the extrusion multiplier. A zero
// displacement is legal and leaves the feed length unchanged.
func (g *Generator) moveRelExtrude(dx, dy float64) error {
	var delta float64
	if dx != 0 || dy != 0 {
		delta = math.Hypot(dx, dy) * g.mult
	}
	return g.moveAbsExtrude(g.cursor.X+dx, g.cursor.Y+dy, g.cursor.E+delta)
}

// reposition relocates the head to (x, y) without extruding: dwell, hop up
// to the travel height, planar travel, back down to the layer height,
// dwell. ConnectorLift only; ConnectorSemicircle never leaves the plane.
func (g *Generator) reposition(x, y float64) error {
	if err := g.dwell(g.config.EndDwell); err != nil {
		return err
	}
	if err := g.setSpeed(g.config.RepositionZSpeed); err != nil {
		return err
	}
	if err := g.moveZ(g.config.LayerHeight + g.config.RepositionLift); err != nil {
		return err
	}
	if err := g.setSpeed(g.config.RepositionSpeed); err != nil {
		return err
	}
	if err := g.moveAbs(x, y); err != nil {
		return err
	}
	if err := g.setSpeed(g.config.RepositionZSpeed); err != nil {
		return err
	}
	if err := g.moveZ(g.config.LayerHeight); err != nil {
		return err
	}
	return g.dwell(g.config.StartDwell)
}

// travel is the in-plane counterpart of reposition: a plain planar move at
// reposition speed, no dwells, no Z hop.
func (g *Generator) travel(x, y float64) error {
	if err := g.setSpeed(g.config.RepositionSpeed); err != nil {
		return err
	}
	return g.moveAbs(x, y)
}
