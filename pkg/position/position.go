// Package position converts region-relative token offsets into byte ranges
// of the original document.
package position

import (
	"fmt"
	"strings"
)

// Range is a half-open byte range [Start, End) in document coordinates.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// LineAndColumn returns the zero-based line and column of r.Start within
// text.
func (r Range) LineAndColumn(text string) (line, col int) {
	if r.Start <= 0 {
		return 0, 0
	}
	lastNewline := -1
	for i := 0; i < r.Start && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, r.Start - lastNewline - 1
}

// MapToken resolves a token at (offset, length) within a region's content to
// a document byte range, using the region's per-line offset table. The
// second return is false when the token's line has no recorded offset
// (region shorter than expected); callers drop such tokens.
//
// A token spanning a line break is truncated to the end of its starting
// line. This mirrors how the ranges are consumed: one decoration per line,
// anchored where the token begins.
func MapToken(offset, length int, content string, lineOffsets []int) (Range, bool) {
	lines := strings.Split(content, "\n")

	lineIdx := -1
	col := 0
	cursor := 0
	for i, line := range lines {
		end := cursor + len(line)
		if offset >= cursor && offset <= end {
			lineIdx = i
			col = offset - cursor
			break
		}
		cursor = end + 1
	}

	if lineIdx < 0 || lineIdx >= len(lineOffsets) {
		return Range{}, false
	}

	endCol := col + length
	if max := len(lines[lineIdx]); endCol > max {
		endCol = max
	}

	start := lineOffsets[lineIdx] + col
	return Range{Start: start, End: lineOffsets[lineIdx] + endCol}, true
}
