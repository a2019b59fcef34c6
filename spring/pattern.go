package spring

import (
	"context"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/fornellas/slogxt/log"

	"github.com/KevinOConnor/reprap-test/gcode"
)

// Fixed preamble / shutdown blocks. These are reproduced verbatim: the
// consumers of this output match on the literal lines.
var headerBlocks = []*gcode.Block{
	gcode.NewBlockRaw(""),
	gcode.NewBlockComment("This is a calibration print for testing extruder springiness."),
	gcode.NewBlockRaw("G90"),
	gcode.NewBlockRaw("G28"),
	gcode.NewBlockRaw("G92 X0 Y0 Z0 E0"),
	gcode.NewBlockRaw(""),
}

var footerBlocks = []*gcode.Block{
	gcode.NewBlockRaw(""),
	gcode.NewBlockRaw("M104 S0 ; turn off temperature"),
	gcode.NewBlockRaw("M140 S0 ; turn of HBP"),
	gcode.NewBlockRaw("M84     ; disable motors"),
	gcode.NewBlockRaw(""),
}

type point struct {
	X float64
	Y float64
}

// semicirclePoints yields offsets from the arc's start point approximating
// a half circle that ends at (0, height), bulging out to halfWidth. It
// yields samples+1 points: samples angle samples over (0, π), then the
// exact endpoint, so the arc always closes regardless of sample count.
func semicirclePoints(halfWidth, height float64, samples int) iter.Seq[point] {
	return func(yield func(point) bool) {
		for i := 1; i <= samples; i++ {
			angle := float64(i) * math.Pi / float64(samples+1)
			p := point{
				X: math.Sin(angle) * halfWidth,
				Y: (1 - math.Cos(angle)) * height / 2,
			}
			if !yield(p) {
				return
			}
		}
		yield(point{X: 0, Y: height})
	}
}

// semicircleTurn draws an extruding semicircular arc from the current
// position to (current + (0, height)). Every step targets an absolute
// sample point computed from the fixed start, so rounding never accumulates
// across steps.
func (g *Generator) semicircleTurn(halfWidth, height float64) error {
	startX, startY := g.cursor.X, g.cursor.Y
	for p := range semicirclePoints(halfWidth, height, g.config.SemicirclePoints) {
		dx := startX + p.X - g.cursor.X
		dy := startY + p.Y - g.cursor.Y
		if err := g.moveRelExtrude(dx, dy); err != nil {
			return err
		}
	}
	return nil
}

// Generate writes the whole calibration job to w. The emitted command
// sequence is a pure function of the configuration: repeated calls produce
// byte-identical output.
func (g *Generator) Generate(ctx context.Context, w io.Writer) error {
	logger := log.MustLogger(ctx)
	totalX, totalY := g.config.PatternSize()
	logger.Debug(
		"Pattern layout",
		"total-x", totalX,
		"total-y", totalY,
		"base-x", g.baseX,
		"base-y", g.baseY,
	)

	g.cursor = Cursor{BaseX: g.baseX, BaseY: g.baseY}
	g.w = gcode.NewWriter(w)

	phases := []func() error{
		g.header,
		g.prime,
		g.leadingRuler,
		g.lanes,
		g.trailingRuler,
		g.footer,
	}
	for _, phase := range phases {
		if err := phase(); err != nil {
			return err
		}
	}
	return g.w.Flush()
}

func (g *Generator) header() error {
	return g.w.WriteBlocks(headerBlocks...)
}

func (g *Generator) footer() error {
	return g.w.WriteBlocks(footerBlocks...)
}

// prime purges the nozzle with one long extruding pass along the pattern's
// top edge, establishing the extrusion baseline.
func (g *Generator) prime() error {
	totalX, totalY := g.config.PatternSize()
	if err := g.comment("Prime extruder"); err != nil {
		return err
	}
	if g.config.Connector == ConnectorLift {
		if err := g.reposition(totalX, totalY); err != nil {
			return err
		}
	} else {
		// Nothing is printed yet: get in position and drop to the layer
		// height once, the head then stays down for the whole job.
		if err := g.travel(totalX, totalY); err != nil {
			return err
		}
		if err := g.setSpeed(g.config.RepositionZSpeed); err != nil {
			return err
		}
		if err := g.moveZ(g.config.LayerHeight); err != nil {
			return err
		}
	}
	if err := g.setSpeed(g.config.RulerSpeed); err != nil {
		return err
	}
	return g.moveRelExtrude(-totalX, 0)
}

// topRulerY is the Y of the leading ruler's baseline, one ruler width of
// clearance below the prime pass.
func (g *Generator) topRulerY() float64 {
	_, totalY := g.config.PatternSize()
	return totalY - 2*g.config.RulerWidth
}

func (g *Generator) leadingRuler() error {
	rulerY := g.topRulerY()
	if err := g.comment("Start ruler"); err != nil {
		return err
	}
	for i := range 2 * g.config.TestTries {
		x := float64(i+1) * g.config.TestLength
		if g.config.Connector == ConnectorLift {
			if err := g.reposition(x, rulerY); err != nil {
				return err
			}
		} else {
			if err := g.travel(x, rulerY); err != nil {
				return err
			}
		}
		if err := g.setSpeed(g.config.RulerSpeed); err != nil {
			return err
		}
		if err := g.moveRelExtrude(0, g.config.RulerWidth); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) trailingRuler() error {
	totalX, _ := g.config.PatternSize()
	rulerY := g.config.RulerWidth
	if err := g.comment("Start ruler"); err != nil {
		return err
	}
	for i := range 2 * g.config.TestTries {
		x := totalX - float64(i+1)*g.config.TestLength
		if g.config.Connector == ConnectorLift {
			if err := g.reposition(x, rulerY); err != nil {
				return err
			}
		} else {
			if err := g.travel(x, rulerY); err != nil {
				return err
			}
		}
		if err := g.setSpeed(g.config.RulerSpeed); err != nil {
			return err
		}
		if err := g.moveRelExtrude(0, -g.config.RulerWidth); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lanes() error {
	for i, speed := range g.config.TestSpeeds {
		if err := g.lane(i, speed); err != nil {
			return err
		}
	}
	return nil
}

// lane draws the forward and return rows for one test speed. Rows stack
// downward from the leading ruler, one lane width apart, so every lane pair
// gets its own Y band.
func (g *Generator) lane(index int, speed float64) error {
	totalX, _ := g.config.PatternSize()
	forwardY := g.topRulerY() - float64(2*index+1)*g.config.LaneWidth
	returnY := forwardY - g.config.LaneWidth

	if err := g.comment(fmt.Sprintf("Start run %d", index)); err != nil {
		return err
	}

	switch {
	case g.config.Connector == ConnectorLift:
		if err := g.reposition(totalX, forwardY); err != nil {
			return err
		}
		if err := g.setSpeed(speed); err != nil {
			return err
		}
	case index == 0:
		if err := g.travel(totalX, forwardY); err != nil {
			return err
		}
		if err := g.setSpeed(speed); err != nil {
			return err
		}
	default:
		// Continue from the previous lane's end with a turn down into this
		// one, bulging inward over the lane's non-extruded lead-in.
		if err := g.setSpeed(speed); err != nil {
			return err
		}
		if err := g.semicircleTurn(-g.config.LaneWidth/2, -g.config.LaneWidth); err != nil {
			return err
		}
	}
	if err := g.laneRow(-1); err != nil {
		return err
	}

	if g.config.Connector == ConnectorLift {
		if err := g.reposition(0, returnY); err != nil {
			return err
		}
		if err := g.setSpeed(speed); err != nil {
			return err
		}
	} else {
		if err := g.semicircleTurn(g.config.LaneWidth/2, -g.config.LaneWidth); err != nil {
			return err
		}
	}
	return g.laneRow(1)
}

// laneRow draws one row: alternating travel and extrude segments, plus one
// final travel segment that leaves room for the next row's lead-in.
func (g *Generator) laneRow(direction float64) error {
	length := direction * g.config.TestLength
	for range g.config.TestTries {
		if err := g.moveRel(length, 0); err != nil {
			return err
		}
		if err := g.moveRelExtrude(length, 0); err != nil {
			return err
		}
	}
	return g.moveRel(length, 0)
}
