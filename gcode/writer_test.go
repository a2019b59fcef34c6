package gcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buff bytes.Buffer
	w := NewWriter(&buff)

	require.NoError(t, w.WriteBlocks(
		NewBlockRaw("G90"),
		NewBlockComment("Start ruler"),
		NewBlockCommand(NewWord('G', 1), NewWord('X', 30), NewWord('Y', 100)),
	))
	require.NoError(t, w.Flush())

	require.Equal(t, "G90\n; Start ruler\nG1 X30.000000 Y100.000000\n", buff.String())
}
