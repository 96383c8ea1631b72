package span

import "fmt"

// Span is a byte range into the source buffer the tree was parsed from.
type Span struct {
	Start  int
	Length int
}

func New(start, length int) Span {
	return Span{Start: start, Length: length}
}

func (s Span) End() int {
	return s.Start + s.Length
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := min(s.Start, other.Start)
	end := max(s.End(), other.End())
	return Span{Start: start, Length: end - start}
}

// LineCol converts the start offset into a 1-based line and column.
// Offsets past the end of source are clamped to the last position.
func (s Span) LineCol(source []byte) (int, int) {
	line, col := 1, 1
	for i := 0; i < s.Start && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.Length)
}
