// Package pos maps byte offsets in a source string to 1-based line/column
// pairs. It is the source position tracker used by the lexer and parser for
// error attribution and AST metadata.
package pos

import "sort"

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether p is the unset Position.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

func (p Position) String() string {
	return itoa(p.Line) + ":" + itoa(p.Column)
}

// Tracker maps byte offsets into a source string to Positions. It is built
// once per source text and is then a pure, stateless lookup: repeated calls
// to Position never mutate the Tracker and always return the same answer for
// the same offset.
type Tracker struct {
	src        string
	lineStarts []int // byte offset of the first byte of each line; lineStarts[0] == 0
}

// NewTracker builds a Tracker over src by scanning it once for line
// boundaries. \n, \r\n, and bare \r are all treated as line terminators.
func NewTracker(src string) *Tracker {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			starts = append(starts, i+1)
		}
	}
	return &Tracker{src: src, lineStarts: starts}
}

// Position returns the 1-based line and column for the given byte offset.
// Offsets past the end of the source clamp to the final position. Column is
// counted in bytes from the start of the line, which matches the lexer's own
// byte-oriented scanning.
func (t *Tracker) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.src) {
		offset = len(t.src)
	}
	// Binary search for the last line start <= offset.
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	col := offset - t.lineStarts[line] + 1
	return Position{Line: line + 1, Column: col}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
