package token

import "strings"

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// PositionAt computes the line/column position of a byte offset in src.
// Offsets past the end of src clamp to the end.
func PositionAt(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = offset - i
	}
	return Position{Line: line, Column: col, Offset: offset}
}
