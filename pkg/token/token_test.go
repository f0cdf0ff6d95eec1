package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Helpers(t *testing.T) {
	assert.True(t, LineComment.IsComment())
	assert.True(t, BlockComment.IsComment())
	assert.False(t, Word.IsComment())

	assert.True(t, String.IsQuoted())
	assert.True(t, QuotedIdent.IsQuoted())
	assert.False(t, Symbol.IsQuoted())
}

func TestToken_Text(t *testing.T) {
	src := "SELECT a"
	tok := Token{Kind: Word, Start: 0, End: 6}
	assert.Equal(t, "SELECT", tok.Text(src))
	assert.Equal(t, 6, tok.Len())
}

func TestPositionAt(t *testing.T) {
	src := "ab\ncd\n\nef"

	cases := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1}, // empty line
		{7, 4, 1},
		{9, 4, 3}, // end of input
	}
	for _, tc := range cases {
		pos := PositionAt(src, tc.offset)
		assert.Equal(t, tc.line, pos.Line, "offset %d line", tc.offset)
		assert.Equal(t, tc.col, pos.Column, "offset %d column", tc.offset)
		assert.True(t, pos.IsValid())
	}

	// Out-of-range offsets clamp.
	assert.Equal(t, len(src), PositionAt(src, 100).Offset)
	assert.Equal(t, 0, PositionAt(src, -5).Offset)
}
