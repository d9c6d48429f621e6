package engine

// KeyKind classifies an input event.
type KeyKind int

const (
	KeyOther KeyKind = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyEscape
)

// Key is a terminal-agnostic input event. Press is false for release and
// repeat notifications, which the session ignores.
type Key struct {
	Kind  KeyKind
	Rune  rune
	Press bool
}

// RuneKey returns a press of a printable rune.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r, Press: true}
}

// PressKey returns a press of a non-printable key.
func PressKey(kind KeyKind) Key {
	return Key{Kind: kind, Press: true}
}

// Outcome describes what Apply did with a key.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeMistyped
	OutcomeDeleted
	OutcomePaused
	OutcomeResumed
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeMistyped:
		return "mistyped"
	case OutcomeDeleted:
		return "deleted"
	case OutcomePaused:
		return "paused"
	case OutcomeResumed:
		return "resumed"
	case OutcomeCompleted:
		return "completed"
	default:
		return "ignored"
	}
}
