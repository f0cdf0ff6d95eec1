package templater

import (
	"strings"

	"github.com/leapstack-labs/meshlint/pkg/token"
)

// extractor consumes the token stream and builds the TemplatedFile.
// It copies everything from the first real SELECT keyword up to (not
// including) the first real terminating semicolon, dropping @ sigils along
// the way. "Real" means outside comments and quoted tokens, which is the
// entire reason extraction runs over tokens instead of the raw text.
type extractor struct {
	src string
	out strings.Builder

	segments []Segment
	raws     []RawSlice

	seenSelect bool // a SELECT keyword has been found
	selecting  bool // currently copying the SELECT statement
}

// extract rewrites the token stream into a TemplatedFile.
// found is false when no SELECT keyword exists outside comments and quotes.
func extract(src string, tokens []token.Token) (tf *TemplatedFile, found bool) {
	ex := &extractor{src: src}
	for _, tok := range tokens {
		ex.consume(tok)
	}
	return &TemplatedFile{
		Source:    src,
		Templated: ex.out.String(),
		Segments:  ex.segments,
		RawSlices: ex.raws,
	}, ex.seenSelect
}

func (ex *extractor) consume(tok token.Token) {
	text := tok.Text(ex.src)

	if !ex.seenSelect && tok.Kind == token.Word && strings.EqualFold(text, "select") {
		ex.seenSelect = true
		ex.selecting = true
	}

	if ex.selecting {
		if tok.Kind == token.Symbol && text == ";" {
			// End of the statement. The semicolon itself and everything
			// after it is dropped.
			ex.selecting = false
			ex.skip(tok)
			return
		}
		if tok.Kind == token.Symbol && text == "@" {
			// Macro sigil: zero-width in the output. Its source range is
			// skipped, not mapped, so fixes never touch it.
			ex.segments = append(ex.segments, Segment{
				OutStart: ex.out.Len(),
				OutEnd:   ex.out.Len(),
				SrcStart: tok.Start,
				SrcEnd:   tok.End,
			})
			ex.recordRaw(RawTemplated, tok)
			return
		}
		ex.copy(tok, text)
		return
	}

	// Before the SELECT keyword or after the terminator: nothing is
	// copied, but the source range is still accounted for.
	ex.skip(tok)
}

// copy writes the token verbatim and records the mapping.
func (ex *extractor) copy(tok token.Token, text string) {
	outStart := ex.out.Len()
	ex.out.WriteString(text)

	// Coalesce with the previous segment when both output and source are
	// contiguous. A zero-width sigil segment in between never merges since
	// it leaves a source gap.
	if n := len(ex.segments); n > 0 {
		last := &ex.segments[n-1]
		if !last.IsZero() && last.OutEnd == outStart && last.SrcEnd == tok.Start {
			last.OutEnd = ex.out.Len()
			last.SrcEnd = tok.End
			ex.recordRaw(RawLiteral, tok)
			return
		}
	}
	ex.segments = append(ex.segments, Segment{
		OutStart: outStart,
		OutEnd:   ex.out.Len(),
		SrcStart: tok.Start,
		SrcEnd:   tok.End,
	})
	ex.recordRaw(RawLiteral, tok)
}

// skip drops the token from the output, recording its source range as
// templated.
func (ex *extractor) skip(tok token.Token) {
	ex.recordRaw(RawTemplated, tok)
}

// recordRaw appends a raw slice, merging adjacent slices of the same kind
// so the final list partitions the source compactly.
func (ex *extractor) recordRaw(kind RawSliceKind, tok token.Token) {
	if n := len(ex.raws); n > 0 {
		last := &ex.raws[n-1]
		if last.Kind == kind && last.End == tok.Start {
			last.End = tok.End
			return
		}
	}
	ex.raws = append(ex.raws, RawSlice{Kind: kind, Start: tok.Start, End: tok.End})
}
