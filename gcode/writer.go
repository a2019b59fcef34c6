package gcode

import (
	"bufio"
	"fmt"
	"io"
)

// Writer serializes blocks as newline-terminated lines to an underlying
// writer. Writes are buffered; callers must Flush before relying on the
// output being complete.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) WriteBlock(block *Block) error {
	line := block.String()
	n, err := fmt.Fprintln(w.bw, line)
	if err != nil {
		return err
	}
	if n != len(line)+1 {
		return fmt.Errorf("short write")
	}
	return nil
}

func (w *Writer) WriteBlocks(blocks ...*Block) error {
	for _, block := range blocks {
		if err := w.WriteBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}
