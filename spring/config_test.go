package spring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"zero bed", func(c *Config) { c.BedX = 0 }, "bed size"},
		{"negative bed", func(c *Config) { c.BedY = -10 }, "bed size"},
		{"no speeds", func(c *Config) { c.TestSpeeds = nil }, "at least one test speed"},
		{"negative speed", func(c *Config) { c.TestSpeeds = []float64{20, -40} }, "test speeds must be positive"},
		{"zero filament", func(c *Config) { c.FilamentDiameter = 0 }, "filament diameter"},
		{"zero width", func(c *Config) { c.ExtrudeWidth = 0 }, "extrude width"},
		{"zero layer", func(c *Config) { c.LayerHeight = 0 }, "layer height"},
		{"zero length", func(c *Config) { c.TestLength = 0 }, "test length"},
		{"zero tries", func(c *Config) { c.TestTries = 0 }, "test tries"},
		{"zero lane", func(c *Config) { c.LaneWidth = 0 }, "lane width"},
		{"zero ruler", func(c *Config) { c.RulerWidth = 0 }, "ruler width"},
		{"zero ruler speed", func(c *Config) { c.RulerSpeed = 0 }, "speeds must be positive"},
		{"negative lift", func(c *Config) { c.RepositionLift = -1 }, "lift"},
		{"negative dwell", func(c *Config) { c.StartDwell = -1 }, "dwells"},
		{"bad connector", func(c *Config) { c.Connector = "spline" }, "unknown connector"},
		{
			"no semicircle points",
			func(c *Config) {
				c.Connector = ConnectorSemicircle
				c.SemicirclePoints = 0
			},
			"semicircle points",
		},
		{"pattern wider than bed", func(c *Config) { c.BedX = 100 }, "does not fit bed"},
		{"pattern taller than bed", func(c *Config) { c.BedY = 50 }, "does not fit bed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			require.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestExtrusionMultiplier(t *testing.T) {
	config := DefaultConfig()
	// 0.3 * 0.4 / (π * 0.875²)
	require.InDelta(t, 0.04989, config.ExtrusionMultiplier(), 0.00001)
}

func TestPatternSize(t *testing.T) {
	config := DefaultConfig()
	config.TestSpeeds = []float64{20, 40, 60}

	totalX, totalY := config.PatternSize()
	require.Equal(t, 140.0, totalX)
	require.Equal(t, 50.0, totalY)
}

func TestPatternFitsBed(t *testing.T) {
	config := DefaultConfig()
	totalX, totalY := config.PatternSize()
	require.LessOrEqual(t, totalX, config.BedX)
	require.LessOrEqual(t, totalY, config.BedY)
}

func TestCenterOffset(t *testing.T) {
	x, y := CenterOffset(200, 250, 140, 73)
	require.Equal(t, 30.0, x)
	require.Equal(t, 88.5, y)
}

func TestParseConnector(t *testing.T) {
	connector, err := ParseConnector("lift")
	require.NoError(t, err)
	require.Equal(t, ConnectorLift, connector)

	connector, err = ParseConnector("semicircle")
	require.NoError(t, err)
	require.Equal(t, ConnectorSemicircle, connector)

	_, err = ParseConnector("teleport")
	require.ErrorContains(t, err, "unknown connector strategy")
}
