package gcode

import (
	"bytes"
	"fmt"
)

// Word may either give a command or provide an argument to a command.
type Word struct {
	letter  rune
	number  float64
	integer bool
}

// NewWord creates a Word from given letter and number.
// letter must be capitalised, or it'll panic.
func NewWord(letter rune, number float64) *Word {
	if letter < 'A' || letter > 'Z' {
		panic(fmt.Sprintf("bug: attempting to create word with letter not between A-Z: %c", letter))
	}
	return &Word{letter: letter, number: number}
}

// NewWordInt creates a Word whose number serializes without a fractional part.
// Used for arguments that firmwares read as integers, e.g. dwell milliseconds (G4 P500).
func NewWordInt(letter rune, number int) *Word {
	w := NewWord(letter, float64(number))
	w.integer = true
	return w
}

func (w *Word) Letter() rune {
	return w.letter
}

func (w *Word) Number() float64 {
	return w.number
}

// IsCommand returns true if the word is a command (letter G or M).
func (w *Word) IsCommand() bool {
	return w.letter == 'G' || w.letter == 'M'
}

// String gives the representation of the word. Commands render without
// trailing decimals (G1, M104); integer arguments render as plain integers
// (P500); all other arguments render as six decimal fixed-point, the form
// RepRap-era firmwares and the tooling around them expect.
func (w *Word) String() string {
	if w.IsCommand() || w.integer {
		return fmt.Sprintf("%c%.0f", w.letter, w.number)
	}
	return fmt.Sprintf("%c%f", w.letter, w.number)
}

// Block is a single output line: a command with arguments, a comment, or a
// raw literal line (used for fixed header / footer blocks that must be
// reproduced exactly, inline comments included).
type Block struct {
	raw     *string
	comment *string
	words   []*Word
}

func NewBlockCommand(words ...*Word) *Block {
	return &Block{words: words}
}

func NewBlockComment(comment string) *Block {
	return &Block{comment: &comment}
}

func NewBlockRaw(raw string) *Block {
	return &Block{raw: &raw}
}

func (b *Block) IsCommand() bool {
	return len(b.words) > 0
}

func (b *Block) IsComment() bool {
	return b.comment != nil
}

// Words returns all words in the block, commands and arguments alike.
func (b *Block) Words() []*Word {
	return b.words
}

// GetArgumentNumber returns the number of the first argument word with the
// given letter, or nil if the block carries no such argument.
func (b *Block) GetArgumentNumber(letter rune) *float64 {
	for _, w := range b.words {
		if w.IsCommand() || w.Letter() != letter {
			continue
		}
		n := w.Number()
		return &n
	}
	return nil
}

func (b *Block) String() string {
	if b.raw != nil {
		return *b.raw
	}
	if b.comment != nil {
		return "; " + *b.comment
	}
	var buff bytes.Buffer
	for i, w := range b.words {
		if i > 0 {
			buff.WriteByte(' ')
		}
		buff.WriteString(w.String())
	}
	return buff.String()
}
