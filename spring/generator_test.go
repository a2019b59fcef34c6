package spring

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KevinOConnor/reprap-test/gcode"
)

// newTestGenerator gives a generator with the writer pointed at a buffer,
// cursor at the pattern origin, like Generate sets it up.
func newTestGenerator(t *testing.T, config *Config) (*Generator, *bytes.Buffer) {
	g, err := NewGenerator(config)
	require.NoError(t, err)
	var buff bytes.Buffer
	g.w = gcode.NewWriter(&buff)
	g.cursor = Cursor{BaseX: g.baseX, BaseY: g.baseY}
	return g, &buff
}

func flushLines(t *testing.T, g *Generator, buff *bytes.Buffer) []string {
	require.NoError(t, g.w.Flush())
	return strings.Split(strings.TrimRight(buff.String(), "\n"), "\n")
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = nil
	_, err := NewGenerator(config)
	require.ErrorContains(t, err, "at least one test speed")
}

func TestBaseOffsetCentersPattern(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = []float64{20, 40, 60}

	g, err := NewGenerator(config)
	require.NoError(t, err)

	// Bed 200x250, pattern 140x50.
	x, y := g.BaseOffset()
	require.Equal(t, 30.0, x)
	require.Equal(t, 100.0, y)
}

func TestSetSpeed(t *testing.T) {
	g, buff := newTestGenerator(t, DefaultConfig())
	require.NoError(t, g.setSpeed(20))
	require.Equal(t, []string{"G1 F1200.000000"}, flushLines(t, g, buff))
}

func TestDwell(t *testing.T) {
	g, buff := newTestGenerator(t, DefaultConfig())
	require.NoError(t, g.dwell(500))
	require.Equal(t, []string{"G4 P500"}, flushLines(t, g, buff))
}

func TestMoveAbs(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = []float64{20, 40, 60}
	g, buff := newTestGenerator(t, config)

	require.NoError(t, g.moveAbs(10, 20))
	require.Equal(t, []string{"G1 X40.000000 Y120.000000"}, flushLines(t, g, buff))
	require.Equal(t, 10.0, g.cursor.X)
	require.Equal(t, 20.0, g.cursor.Y)
	require.Equal(t, 0.0, g.cursor.E)
}

func TestMoveAbsExtrudeRecordsLiteralFeed(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = []float64{20, 40, 60}
	g, buff := newTestGenerator(t, config)

	require.NoError(t, g.moveAbsExtrude(10, 0, 2.5))
	require.Equal(t, []string{"G1 X40.000000 Y100.000000 E2.500000"}, flushLines(t, g, buff))
	require.Equal(t, 2.5, g.cursor.E)
}

func TestMoveRelExtrudeAccumulatesFeed(t *testing.T) {
	config := DefaultConfig()
	g, buff := newTestGenerator(t, config)
	mult := config.ExtrusionMultiplier()

	require.NoError(t, g.moveRelExtrude(-20, 0))
	require.NoError(t, g.moveRelExtrude(0, 10))

	expectedE1 := 20 * mult
	expectedE2 := expectedE1 + 10*mult
	lines := flushLines(t, g, buff)
	require.Len(t, lines, 2)
	require.Equal(t, fmt.Sprintf("E%f", expectedE1), strings.Fields(lines[0])[3])
	require.Equal(t, fmt.Sprintf("E%f", expectedE2), strings.Fields(lines[1])[3])
	require.Equal(t, expectedE2, g.cursor.E)
}

func TestMoveRelExtrudeZeroDisplacement(t *testing.T) {
	g, buff := newTestGenerator(t, DefaultConfig())

	require.NoError(t, g.moveRelExtrude(-20, 0))
	before := g.cursor.E
	require.NoError(t, g.moveRelExtrude(0, 0))
	require.Equal(t, before, g.cursor.E)

	lines := flushLines(t, g, buff)
	require.Len(t, lines, 2)
	// Both moves must report the same cumulative feed, byte for byte.
	require.Equal(t, strings.Fields(lines[0])[3], strings.Fields(lines[1])[3])
}

func TestMoveRelIsTravelOnly(t *testing.T) {
	g, buff := newTestGenerator(t, DefaultConfig())

	require.NoError(t, g.moveRelExtrude(-20, 0))
	e := g.cursor.E
	require.NoError(t, g.moveRel(-20, 0))
	require.Equal(t, e, g.cursor.E)

	lines := flushLines(t, g, buff)
	require.NotContains(t, lines[1], "E")
}

func TestReposition(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = []float64{20, 40, 60}
	g, buff := newTestGenerator(t, config)

	require.NoError(t, g.reposition(140, 50))

	require.Equal(t, []string{
		"G4 P500",
		"G1 F600.000000",
		"G1 Z1.300000",
		"G1 F2400.000000",
		"G1 X170.000000 Y150.000000",
		"G1 F600.000000",
		"G1 Z0.300000",
		"G4 P500",
	}, flushLines(t, g, buff))
}
