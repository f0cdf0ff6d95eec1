// Package templater extracts the lintable SELECT statement from SQLMesh-style
// model scripts.
//
// A model script wraps a single SELECT statement in declarations a SQL
// parser cannot read: a MODEL(...) header, optional pre/post statements, and
// @-prefixed macro tokens. The templater tokenizes the script in one pass,
// copies the first SELECT statement (up to its terminating semicolon) into a
// new buffer with the @ sigils removed, and records an exact byte-offset
// mapping from the rewritten text back to the original file. Downstream
// linters parse the rewritten text and translate every diagnostic position
// through the mapping.
//
// Processing is pure and deterministic: the same source and options always
// yield a byte-identical TemplatedFile. Each call is independent, so callers
// may process many files concurrently without coordination.
package templater

import "github.com/leapstack-labs/meshlint/pkg/token"

// Process templates a single model script.
//
// It returns ErrEmptyInput for an empty script and ErrNoSelect when the
// script contains no SELECT statement outside comments and quoted tokens;
// both mean "nothing to lint" and the caller decides how to surface them.
// An *InvariantError indicates a tokenizer defect, never bad input.
// Malformed input (unterminated comments or quotes) is not an error: the
// affected token extends to the end of the script.
func Process(src string, opts Options) (*TemplatedFile, error) {
	if src == "" {
		return nil, ErrEmptyInput
	}
	opts = opts.withDefaults()

	tokens := Tokenize(src, opts)
	if err := verifyCoverage(src, tokens); err != nil {
		return nil, err
	}

	tf, found := extract(src, tokens)
	if !found {
		return nil, ErrNoSelect
	}
	return tf, nil
}

// verifyCoverage checks that the tokens cover the input exactly, in order,
// with no gaps and no overlaps.
func verifyCoverage(src string, tokens []token.Token) error {
	offset := 0
	for _, tok := range tokens {
		if tok.Start != offset {
			return &InvariantError{Offset: offset, Msg: "token does not start at scan position"}
		}
		if tok.End < tok.Start {
			return &InvariantError{Offset: tok.Start, Msg: "token has negative width"}
		}
		offset = tok.End
	}
	if offset != len(src) {
		return &InvariantError{Offset: offset, Msg: "tokens do not reach end of input"}
	}
	return nil
}
