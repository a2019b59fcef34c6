package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"

	ifmt "github.com/KevinOConnor/reprap-test/internal/fmt"
	"github.com/KevinOConnor/reprap-test/spring"
)

var springConfig spring.Config
var springConnector string

var ExtruderSpringCmd = &cobra.Command{
	Use:   "extruder-spring",
	Short: "Generate a g-code print that measures extruder springiness.",
	Long: "Generate a g-code calibration print: parallel extrusion lanes, one per " +
		"test speed, framed by rulers, centered on the bed. Measuring where each " +
		"lane's extrusion actually starts and stops against the rulers gives the " +
		"extruder's springiness at that speed. Inspect the output before printing it.",
	Args: cobra.NoArgs,
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"connector", springConnector,
			"test-speeds", ifmt.SprintFloats(springConfig.TestSpeeds, 4),
			"output", outputValue,
		)
		cmd.SetContext(ctx)
		logger.Info("Running")

		config := springConfig
		config.Connector, err = spring.ParseConnector(springConnector)
		if err != nil {
			return err
		}

		generator, err := spring.NewGenerator(&config)
		if err != nil {
			return err
		}

		totalX, totalY := config.PatternSize()
		baseX, baseY := generator.BaseOffset()
		logger.Info(
			"Pattern layout",
			"size", ifmt.SprintFloat(totalX, 4)+"x"+ifmt.SprintFloat(totalY, 4),
			"base-offset", ifmt.SprintFloat(baseX, 4)+","+ifmt.SprintFloat(baseY, 4),
		)

		w, err := outputValue.WriterCloser()
		if err != nil {
			return err
		}
		if !outputValue.IsStdout() {
			defer func() { err = errors.Join(err, w.Close()) }()
		}

		return generator.Generate(ctx, w)
	}),
}

func init() {
	def := spring.DefaultConfig()
	f := ExtruderSpringCmd.PersistentFlags()

	f.Float64Var(&springConfig.FilamentDiameter, "filament-diameter", def.FilamentDiameter, "Filament feedstock diameter (mm)")
	f.Float64Var(&springConfig.ExtrudeWidth, "extrude-width", def.ExtrudeWidth, "Width of the deposited bead (mm)")
	f.Float64Var(&springConfig.LayerHeight, "layer-height", def.LayerHeight, "Z height to print the pattern at (mm)")
	f.Float64Var(&springConfig.BedX, "bed-x", def.BedX, "Bed X size, used to center the print (mm)")
	f.Float64Var(&springConfig.BedY, "bed-y", def.BedY, "Bed Y size, used to center the print (mm)")
	f.Float64SliceVar(&springConfig.TestSpeeds, "test-speeds", def.TestSpeeds, "Extrusion speeds to test, one lane pair each (mm/s)")
	f.Float64Var(&springConfig.TestLength, "test-length", def.TestLength, "Length of each test segment (mm)")
	f.IntVar(&springConfig.TestTries, "test-tries", def.TestTries, "Extruding segments per lane row")
	f.Float64Var(&springConfig.LaneWidth, "lane-width", def.LaneWidth, "Y distance between adjacent lane rows (mm)")
	f.Float64Var(&springConfig.RulerWidth, "ruler-width", def.RulerWidth, "Length of the ruler marks (mm)")
	f.Float64Var(&springConfig.RulerSpeed, "ruler-speed", def.RulerSpeed, "Speed for rulers and priming (mm/s)")
	f.Float64Var(&springConfig.RepositionSpeed, "reposition-speed", def.RepositionSpeed, "Speed for non-extruding planar moves (mm/s)")
	f.Float64Var(&springConfig.RepositionZSpeed, "reposition-z-speed", def.RepositionZSpeed, "Speed for Z moves (mm/s)")
	f.Float64Var(&springConfig.RepositionLift, "reposition-lift", def.RepositionLift, "Z clearance above the layer while repositioning (mm)")
	f.IntVar(&springConfig.StartDwell, "start-dwell", def.StartDwell, "Dwell after each repositioning (ms)")
	f.IntVar(&springConfig.EndDwell, "end-dwell", def.EndDwell, "Dwell before each repositioning (ms)")
	f.StringVar(&springConnector, "connector", string(def.Connector), "Strategy between strokes: \"lift\" or \"semicircle\"")
	f.IntVar(&springConfig.SemicirclePoints, "semicircle-points", def.SemicirclePoints, "Angle samples per semicircular lane turn")

	AddOutputFlags(ExtruderSpringCmd)
	RootCmd.AddCommand(ExtruderSpringCmd)

	resetFlagsFns = append(resetFlagsFns, func() {
		springConfig = *def
		springConnector = string(def.Connector)
	})
}
