// Package splitter wraps text into fixed-width lines of characters.
package splitter

import (
	"unicode"

	"github.com/verte-zerg/typedrill/internal/model"
)

// Split breaks text into lines of at most maxLen code points.
//
// A newline ends its line and stays as the line's last character. When a line
// fills up mid-word it is broken after the most recent whitespace, which stays
// at the end of the line it terminates; a word longer than maxLen is
// hard-broken. Joining the target text of all lines yields text unchanged.
func Split(text string, maxLen int) []model.Line {
	if maxLen < 1 {
		maxLen = 1
	}
	runes := []rune(text)
	var lines []model.Line
	start := 0
	lastSpace := -1
	for i, r := range runes {
		if unicode.IsSpace(r) {
			lastSpace = i
		}
		length := i - start + 1
		if r != '\n' && length < maxLen {
			continue
		}
		end := i + 1
		if r != '\n' && !unicode.IsSpace(r) && lastSpace > start {
			end = lastSpace + 1
		}
		lines = append(lines, model.NewLine(runes[start:end]))
		start = end
		lastSpace = -1
	}
	if start < len(runes) {
		lines = append(lines, model.NewLine(runes[start:]))
	}
	return lines
}

// Join returns the target text of lines concatenated.
func Join(lines []model.Line) string {
	var out []rune
	for _, line := range lines {
		for _, c := range line {
			out = append(out, c.Target)
		}
	}
	return string(out)
}
