package templater

// QuoteEscape selects how quote characters are escaped inside string
// literals and quoted identifiers.
type QuoteEscape int

// Quote escape styles.
const (
	// EscapeDoubled treats a doubled quote as an escaped quote: 'it''s'.
	// This is the ANSI SQL convention and the default.
	EscapeDoubled QuoteEscape = iota
	// EscapeBackslash additionally treats a backslash as escaping the
	// next character, for dialects that allow 'it\'s'.
	EscapeBackslash
)

func (e QuoteEscape) String() string {
	switch e {
	case EscapeDoubled:
		return "doubled"
	case EscapeBackslash:
		return "backslash"
	default:
		return "unknown"
	}
}

// Options configures dialect-dependent tokenizer behavior.
// The zero value is not usable directly; pass it through withDefaults or
// use DefaultOptions.
type Options struct {
	// LineCommentMarkers are the prefixes that start a comment running to
	// end of line. Defaults to "--" and "//". Add "#" for dialects that
	// support hash comments.
	LineCommentMarkers []string

	// QuoteEscape selects the escape convention inside quoted tokens.
	QuoteEscape QuoteEscape
}

// DefaultOptions returns options matching common SQL conventions.
func DefaultOptions() Options {
	return Options{
		LineCommentMarkers: []string{"--", "//"},
		QuoteEscape:        EscapeDoubled,
	}
}

// withDefaults fills unset fields with their defaults.
func (o Options) withDefaults() Options {
	if len(o.LineCommentMarkers) == 0 {
		o.LineCommentMarkers = DefaultOptions().LineCommentMarkers
	}
	return o
}
