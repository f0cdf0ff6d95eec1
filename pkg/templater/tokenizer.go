package templater

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/meshlint/pkg/token"
)

// Tokenizer scans a model script left to right in a single pass, producing
// classified spans that cover the input exactly: concatenating the text of
// all tokens, in order, reconstructs the source byte for byte.
//
// Nothing the tokenizer encounters is an error. Unterminated block comments
// and quoted tokens extend to the end of input.
type Tokenizer struct {
	input string
	opts  Options
	pos   int // current byte offset
}

// NewTokenizer creates a tokenizer over input. The same text can be
// re-scanned by constructing a fresh Tokenizer.
func NewTokenizer(input string, opts Options) *Tokenizer {
	return &Tokenizer{input: input, opts: opts.withDefaults()}
}

// Next returns the next token. ok is false once the input is exhausted.
func (t *Tokenizer) Next() (tok token.Token, ok bool) {
	if t.pos >= len(t.input) {
		return token.Token{}, false
	}

	start := t.pos
	ch := t.input[t.pos]

	switch {
	case t.matchLineComment():
		return t.scanLineComment(start), true
	case t.matchString("/*"):
		return t.scanBlockComment(start), true
	case ch == '\'':
		return t.scanQuoted(start, '\'', token.String), true
	case ch == '"':
		return t.scanQuoted(start, '"', token.QuotedIdent), true
	case isSpace(ch):
		return t.scanRun(start, token.Whitespace, isSpace), true
	case isWordByte(ch):
		return t.scanRun(start, token.Word, isWordByte), true
	case ch < utf8.RuneSelf:
		t.pos++
		return token.Token{Kind: token.Symbol, Start: start, End: t.pos}, true
	default:
		_, size := utf8.DecodeRuneInString(t.input[t.pos:])
		t.pos += size
		return token.Token{Kind: token.Other, Start: start, End: t.pos}, true
	}
}

// Tokenize scans the whole input at once.
func Tokenize(input string, opts Options) []token.Token {
	tz := NewTokenizer(input, opts)
	var tokens []token.Token
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// matchString checks if the input at the current position starts with s.
func (t *Tokenizer) matchString(s string) bool {
	return strings.HasPrefix(t.input[t.pos:], s)
}

// matchLineComment checks the configured line-comment markers.
func (t *Tokenizer) matchLineComment() bool {
	for _, m := range t.opts.LineCommentMarkers {
		if t.matchString(m) {
			return true
		}
	}
	return false
}

// scanLineComment consumes a comment up to and including the newline.
func (t *Tokenizer) scanLineComment(start int) token.Token {
	for t.pos < len(t.input) && t.input[t.pos] != '\n' {
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++ // include the newline
	}
	return token.Token{Kind: token.LineComment, Start: start, End: t.pos}
}

// scanBlockComment consumes /* ... */ including the delimiters.
// Block comments do not nest. A missing terminator extends the comment to
// the end of input.
func (t *Tokenizer) scanBlockComment(start int) token.Token {
	t.pos += 2 // skip /*
	for t.pos < len(t.input) {
		if t.matchString("*/") {
			t.pos += 2
			break
		}
		t.pos++
	}
	return token.Token{Kind: token.BlockComment, Start: start, End: t.pos}
}

// scanQuoted consumes a quoted token including its delimiters.
// A doubled quote escapes itself; with EscapeBackslash a backslash also
// escapes the following character. A missing closing quote extends the
// token to the end of input.
func (t *Tokenizer) scanQuoted(start int, quote byte, kind token.Kind) token.Token {
	t.pos++ // skip opening quote
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == quote {
			t.pos++
			if t.pos < len(t.input) && t.input[t.pos] == quote {
				t.pos++ // doubled quote escape, keep scanning
				continue
			}
			break
		}
		if ch == '\\' && t.opts.QuoteEscape == EscapeBackslash && t.pos+1 < len(t.input) {
			t.pos++ // skip the escaped character
		}
		t.pos++
	}
	return token.Token{Kind: kind, Start: start, End: t.pos}
}

// scanRun consumes a maximal run of bytes satisfying pred.
func (t *Tokenizer) scanRun(start int, kind token.Kind, pred func(byte) bool) token.Token {
	for t.pos < len(t.input) && pred(t.input[t.pos]) {
		t.pos++
	}
	return token.Token{Kind: kind, Start: start, End: t.pos}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isWordByte(ch byte) bool {
	return ch == '_' ||
		('a' <= ch && ch <= 'z') ||
		('A' <= ch && ch <= 'Z') ||
		('0' <= ch && ch <= '9')
}
