package templater

import (
	"sort"

	"github.com/leapstack-labs/meshlint/pkg/token"
)

// Segment maps a contiguous run of templated output back to a contiguous
// run of source text. Offsets are byte offsets, ends exclusive.
//
// Segments are produced in non-decreasing output and source order. Non-empty
// segments partition the templated text exactly: no gaps, no overlaps. A
// zero-width segment (OutStart == OutEnd) marks a templated point in the
// output where source text (a removed macro sigil) was dropped.
type Segment struct {
	OutStart int `json:"out_start" yaml:"out_start"`
	OutEnd   int `json:"out_end" yaml:"out_end"`
	SrcStart int `json:"src_start" yaml:"src_start"`
	SrcEnd   int `json:"src_end" yaml:"src_end"`
}

// IsZero reports whether the segment contributes no output (a skipped
// source range with no corresponding templated text).
func (s Segment) IsZero() bool {
	return s.OutStart == s.OutEnd
}

// RawSliceKind distinguishes source text that survives into the output from
// source text the templater dropped.
type RawSliceKind int

// Raw slice kinds.
const (
	RawLiteral   RawSliceKind = iota // copied verbatim into the output
	RawTemplated                     // dropped: MODEL block, hooks, @ sigils, trailing statements
)

func (k RawSliceKind) String() string {
	if k == RawLiteral {
		return "literal"
	}
	return "templated"
}

// RawSlice classifies a contiguous run of the original source.
// Raw slices partition the entire source text.
type RawSlice struct {
	Kind  RawSliceKind `json:"kind" yaml:"kind"`
	Start int          `json:"start" yaml:"start"`
	End   int          `json:"end" yaml:"end"`
}

// Text returns the source text covered by the slice.
func (s RawSlice) Text(src string) string {
	return src[s.Start:s.End]
}

// TemplatedFile is the result of templating one model script: the extracted
// SELECT statement with macro sigils removed, plus the position mapping
// back to the original source. It is a pure value; the templater fully
// constructs it before returning and never mutates it afterwards.
type TemplatedFile struct {
	// Source is the original script text, unmodified.
	Source string `json:"-" yaml:"-"`

	// Templated is the extracted, rewritten SQL.
	Templated string `json:"templated" yaml:"templated"`

	// Segments maps templated offsets back to source offsets.
	Segments []Segment `json:"segments" yaml:"segments"`

	// RawSlices classifies the whole source as literal or templated.
	RawSlices []RawSlice `json:"raw_slices" yaml:"raw_slices"`
}

// SourceOffset translates an offset in the templated text to the
// corresponding offset in the original source. ok is false if out is not
// covered by any segment (out of range).
func (f *TemplatedFile) SourceOffset(out int) (src int, ok bool) {
	segs := f.Segments
	i := sort.Search(len(segs), func(i int) bool {
		return segs[i].OutEnd > out
	})
	// Skip zero-width segments sharing the boundary.
	for i < len(segs) && segs[i].IsZero() {
		i++
	}
	if i >= len(segs) || out < segs[i].OutStart || out >= segs[i].OutEnd {
		return 0, false
	}
	return segs[i].SrcStart + (out - segs[i].OutStart), true
}

// SourcePosition translates an offset in the templated text to a line and
// column in the original source.
func (f *TemplatedFile) SourcePosition(out int) (token.Position, bool) {
	src, ok := f.SourceOffset(out)
	if !ok {
		return token.Position{}, false
	}
	return token.PositionAt(f.Source, src), true
}

// IsTemplated reports whether the source offset falls inside a templated raw
// slice, text the extraction dropped rather than copied.
func (f *TemplatedFile) IsTemplated(src int) bool {
	slices := f.RawSlices
	i := sort.Search(len(slices), func(i int) bool {
		return slices[i].End > src
	})
	if i >= len(slices) || src < slices[i].Start {
		return false
	}
	return slices[i].Kind == RawTemplated
}

// InsertionPoints returns the templated offsets at which source text was
// removed (the stripped @ sigils). The same offset may appear once per
// removed character run.
func (f *TemplatedFile) InsertionPoints() []int {
	var points []int
	for _, s := range f.Segments {
		if s.IsZero() {
			points = append(points, s.OutStart)
		}
	}
	return points
}
