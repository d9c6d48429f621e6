package engine

import (
	"unicode"

	"github.com/verte-zerg/typedrill/internal/model"
)

type wordSpan struct {
	start, end, lineOffset int
}

// WordBounds locates the k-th word from the cursor: k=0 is the word under
// or after the cursor, k=1 the next one. end is exclusive and lineOffset
// counts lines past the cursor line. When the text runs out, the last word
// found is returned, or an empty span at the cursor if there is none.
func (s *Session) WordBounds(k int) (start, end, lineOffset int) {
	if k < 0 {
		k = 0
	}
	last := wordSpan{start: s.cursor.Pos, end: s.cursor.Pos}
	found := 0
	for li := s.cursor.Line; li < len(s.lines); li++ {
		from := 0
		if li == s.cursor.Line {
			from = s.cursor.Pos
		}
		for _, w := range lineWords(s.lines[li]) {
			if w[1] <= from {
				continue
			}
			last = wordSpan{start: w[0], end: w[1], lineOffset: li - s.cursor.Line}
			if found == k {
				return last.start, last.end, last.lineOffset
			}
			found++
		}
	}
	return last.start, last.end, last.lineOffset
}

// lineWords returns [start, end) spans of whitespace-free runs in line.
func lineWords(line model.Line) [][2]int {
	var words [][2]int
	start := -1
	for i, c := range line {
		if unicode.IsSpace(c.Target) {
			if start >= 0 {
				words = append(words, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, [2]int{start, len(line)})
	}
	return words
}
