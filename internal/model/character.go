package model

// CharState is the judgement of a single character.
type CharState int

const (
	Untouched CharState = iota
	Correct
	Incorrect
)

func (s CharState) String() string {
	switch s {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "untouched"
	}
}

// Character is one target code point and what was typed against it.
// State is authoritative; Typed mirrors Target while Untouched.
type Character struct {
	Target rune
	Typed  rune
	State  CharState
}

// NewCharacter returns an untouched character.
func NewCharacter(target rune) Character {
	return Character{Target: target, Typed: target}
}

// SetTyped judges typed against the target and reports whether it was an error.
func (c *Character) SetTyped(typed rune) bool {
	c.Typed = typed
	if typed == c.Target {
		c.State = Correct
		return false
	}
	c.State = Incorrect
	return true
}

// Reset returns the character to Untouched.
func (c *Character) Reset() {
	c.Typed = c.Target
	c.State = Untouched
}

// Line is a fixed-length row of characters.
type Line []Character

// NewLine builds an untouched line from runes.
func NewLine(runes []rune) Line {
	line := make(Line, len(runes))
	for i, r := range runes {
		line[i] = NewCharacter(r)
	}
	return line
}

// String returns the target text of the line.
func (l Line) String() string {
	runes := make([]rune, len(l))
	for i, c := range l {
		runes[i] = c.Target
	}
	return string(runes)
}
