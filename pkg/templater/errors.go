package templater

import (
	"errors"
	"fmt"
)

// Sentinel conditions reported by Process. Both are recoverable: the host
// decides how to surface them (typically as a skipped file).
var (
	// ErrNoSelect indicates the script contains no SELECT statement
	// outside comments and quoted tokens, so there is nothing to lint.
	ErrNoSelect = errors.New("no SELECT statement found")

	// ErrEmptyInput indicates the script is empty.
	ErrEmptyInput = errors.New("empty input")
)

// InvariantError reports a defect in the tokenizer itself: the scanned
// tokens did not cover the input exactly. Unlike the sentinel conditions it
// is not recoverable and never caused by the input's content.
type InvariantError struct {
	Offset int    // byte offset where coverage broke
	Msg    string // what went wrong
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tokenizer invariant violated at offset %d: %s", e.Offset, e.Msg)
}
