// Package token defines the token kinds and source spans produced by the
// model-script tokenizer. Tokens never copy text: they are offsets into the
// immutable source string they were scanned from.
package token

// Kind classifies a scanned slice of source text.
type Kind int

// Token kinds.
const (
	Whitespace   Kind = iota // spaces, tabs, newlines
	LineComment              // -- comment (to end of line)
	BlockComment             // /* comment */
	String                   // 'single-quoted literal'
	QuotedIdent              // "double-quoted identifier"
	Word                     // identifier or keyword
	Symbol                   // single punctuation character
	Other                    // anything else, one rune at a time
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "WHITESPACE"
	case LineComment:
		return "LINE_COMMENT"
	case BlockComment:
		return "BLOCK_COMMENT"
	case String:
		return "STRING"
	case QuotedIdent:
		return "QUOTED_IDENT"
	case Word:
		return "WORD"
	case Symbol:
		return "SYMBOL"
	case Other:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// IsComment returns true for line and block comments.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// IsQuoted returns true for string literals and quoted identifiers.
func (k Kind) IsQuoted() bool {
	return k == String || k == QuotedIdent
}

// Token is a classified span of the original source.
// Start and End are 0-based byte offsets, End exclusive.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

// Text returns the literal slice of src covered by the token.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

// Len returns the token width in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
