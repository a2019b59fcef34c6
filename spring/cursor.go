package spring

// Cursor tracks the head position relative to the pattern's base offset,
// plus the cumulative filament feed. E only ever grows: extruding moves
// emit the absolute total filament consumed along the path so far, not
// per-segment deltas.
type Cursor struct {
	BaseX float64
	BaseY float64
	X     float64
	Y     float64
	E     float64
}
