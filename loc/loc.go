// Package loc provides the source-position types shared by every stage of
// the CI front-end: the scanner tags each token, and the parser tags each
// declaration and data type, with a Range.
package loc

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Location is a single point in a source file.
type Location struct {
	File   string
	Line   int32
	Column int32
	Pos    int32
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Range is a span within a source file. It is inclusive of Start and
// exclusive of End, per spec §3.
type Range struct {
	Start Location
	End   Location
}

// NewRange builds a Range from two locations in the same file.
func NewRange(start, end Location) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	if r.Start.Line == r.End.Line {
		if r.Start.Column == r.End.Column {
			return fmt.Sprintf("%s:%d:%d", r.Start.File, r.Start.Line, r.Start.Column)
		}
		return fmt.Sprintf("%s:%d:%d..%d", r.Start.File, r.Start.Line, r.Start.Column, r.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d..%d:%d", r.Start.File, r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// Contains reports whether other is entirely nested within r.
func (r Range) Contains(other Range) bool {
	return other.Start.Pos >= r.Start.Pos && other.End.Pos <= r.End.Pos
}

// Join returns the smallest range covering both r and other.
func (r Range) Join(other Range) Range {
	start, end := r.Start, r.End
	if other.Start.Pos < start.Pos {
		start = other.Start
	}
	if other.End.Pos > end.Pos {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// LineIndex allows fast conversion from byte cursor offsets to line/column,
// mirroring the teacher's pos.go LineIndex: it stores the start byte offset
// of each line and binary searches line starts on lookup.
type LineIndex struct {
	file      string
	input     []byte
	lineStart []int
}

// NewLineIndex builds a LineIndex over input, an O(n) pass.
func NewLineIndex(file string, input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{file: file, input: input, lineStart: lineStart}
}

// LocationAt returns the Location for a byte cursor offset.
func (li *LineIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := int32(utf8.RuneCount(li.input[lineStart:cursor])) + 1

	return Location{
		File:   li.file,
		Line:   int32(lineIdx + 1),
		Column: col,
		Pos:    int32(cursor),
	}
}

// Range builds a Range from a [start, end) byte cursor pair.
func (li *LineIndex) Range(start, end int) Range {
	return Range{Start: li.LocationAt(start), End: li.LocationAt(end)}
}
