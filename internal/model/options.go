package model

import "strings"

// Difficulty controls which transforms are applied to generated words.
// Levels are cumulative in the order declared.
type Difficulty int

const (
	Lowercase Difficulty = iota
	Uppercase
	Numbers
	Symbols
)

var difficultyNames = []string{"lowercase", "uppercase", "numbers", "symbols"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

// Next cycles to the following level, wrapping around.
func (d Difficulty) Next() Difficulty {
	return Difficulty((int(d) + 1) % len(difficultyNames))
}

// Prev cycles to the preceding level, wrapping around.
func (d Difficulty) Prev() Difficulty {
	n := len(difficultyNames)
	return Difficulty((int(d) + n - 1) % n)
}

// ParseDifficulty maps a config value to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), true
		}
	}
	return Lowercase, false
}

// Highlight controls what the renderer emphasises ahead of the cursor.
type Highlight int

const (
	HighlightNothing Highlight = iota
	HighlightCharacter
	HighlightWord
	HighlightNextWord
	HighlightTwoWords
)

var highlightNames = []string{"nothing", "character", "word", "word ahead", "2 words ahead"}

func (h Highlight) String() string {
	if h < 0 || int(h) >= len(highlightNames) {
		return "unknown"
	}
	return highlightNames[h]
}

// Next cycles to the following highlight, wrapping around.
func (h Highlight) Next() Highlight {
	return Highlight((int(h) + 1) % len(highlightNames))
}

// Prev cycles to the preceding highlight, wrapping around.
func (h Highlight) Prev() Highlight {
	n := len(highlightNames)
	return Highlight((int(h) + n - 1) % n)
}

// WordsAhead is the lookahead count used for word highlighting.
func (h Highlight) WordsAhead() int {
	switch h {
	case HighlightNextWord:
		return 1
	case HighlightTwoWords:
		return 2
	default:
		return 0
	}
}

// ParseHighlight maps a config value to a Highlight.
func ParseHighlight(s string) (Highlight, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "next-word":
		return HighlightNextWord, true
	case "two-words":
		return HighlightTwoWords, true
	}
	for i, name := range highlightNames {
		if name == s {
			return Highlight(i), true
		}
	}
	return HighlightNothing, false
}

// WordCounts are the session lengths offered in the pause menu; 0 is endless.
var WordCounts = []int{0, 10, 25, 50, 100}

// NextWordCount returns the entry after n in WordCounts.
func NextWordCount(n int) int {
	for i, c := range WordCounts {
		if c == n {
			return WordCounts[(i+1)%len(WordCounts)]
		}
	}
	return WordCounts[0]
}

// PrevWordCount returns the entry before n in WordCounts.
func PrevWordCount(n int) int {
	for i, c := range WordCounts {
		if c == n {
			return WordCounts[(i+len(WordCounts)-1)%len(WordCounts)]
		}
	}
	return WordCounts[0]
}
