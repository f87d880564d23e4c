// Package lexer turns exx source text into a stream of position-tagged tokens.
//
// The lexer never stops on bad input. Each token carries the diagnostics that
// were recovered while scanning it, so a single pass over the source reports
// every lexical problem.
package lexer

import "strconv"

// Position is a location in the source text.
//
// Position is a value type: it is small, immutable once created, and copied
// freely between tokens, spans and diagnostics.
type Position struct {
	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column, counted in runes rather than bytes, so
	// "hello 世界" is eight columns wide.
	Column int

	// Offset is the 0-based byte offset from the start of the input. It is the
	// natural index for slicing the source: src[start.Offset:end.Offset].
	Offset int
}

// StartPosition is the position of the first character of any input.
var StartPosition = Position{Line: 1, Column: 1, Offset: 0}

// Advance returns the position that follows ch.
//
// A newline moves to column 1 of the next line; every other rune moves one
// column to the right. The byte offset always grows by the rune's UTF-8 length.
func (p Position) Advance(ch rune, size int) Position {
	p.Offset += size
	if ch == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position has a line number. The zero Position
// is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other. Offsets are the source of
// truth; line and column are derived from them.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes after other.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// Span is a range of source text.
//
// End is the position just past the last character of the range, so the
// covered bytes are src[Start.Offset:End.Offset]. A zero-length span has
// Start == End.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// String formats the span as "line:col-col" on a single line, or
// "line:col-line:col" when it crosses lines.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return s.Start.String() + "-" + strconv.Itoa(s.End.Column)
	}
	return s.Start.String() + "-" + s.End.String()
}

// IsValid reports whether both ends are valid and ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// Contains reports whether pos falls inside the half-open span.
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && pos.Before(s.End)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

// Slice returns the part of src covered by the span. Out-of-range spans are
// clamped to the source.
func (s Span) Slice(src string) string {
	start, end := s.Start.Offset, s.End.Offset
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}
