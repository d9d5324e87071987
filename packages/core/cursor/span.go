package cursor

import "strings"

// Span is a zero-copy slice of a cursor's input between two byte offsets.
type Span struct {
	input string
	Start int
	End   int
}

// NewSpan creates a span over input. It is mostly useful in tests.
func NewSpan(input string, start, end int) Span {
	return Span{input: input, Start: start, End: end}
}

// String returns the spanned text. It shares memory with the input.
func (s Span) String() string {
	return s.input[s.Start:s.End]
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no input.
func (s Span) IsEmpty() bool {
	return s.End == s.Start
}

// Position returns the line and column where the span starts.
func (s Span) Position() Position {
	return positionOf(s.input, s.Start)
}

// TrimRight returns the span without trailing characters contained in cutset.
func (s Span) TrimRight(cutset string) Span {
	trimmed := strings.TrimRight(s.String(), cutset)
	s.End = s.Start + len(trimmed)
	return s
}
