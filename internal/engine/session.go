// Package engine runs a typing session: it judges keystrokes against a
// buffer of generated lines, tracks time and per-character statistics, and
// requests more content as lines complete.
package engine

import (
	"time"

	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/stats"
)

const (
	defaultLineWidth = 60
	// linesAhead is how many untyped lines an endless session keeps queued.
	linesAhead = 2
)

// ContentSource produces lines of practice text, optionally targeting hint.
type ContentSource interface {
	Generate(hint rune, hasHint bool, maxLen int) []model.Line
}

// HintFunc chooses the character the next chunk should target.
type HintFunc func(model.StatsTable) (rune, bool)

// Cursor points at the next character to judge.
type Cursor struct {
	Line int
	Pos  int
}

// Session is the typing state machine. It is not safe for concurrent use.
type Session struct {
	source    ContentSource
	hint      HintFunc
	lineWidth int
	finite    bool
	retention int

	lines  []model.Line
	cursor Cursor
	timer  *Timer

	started  bool
	paused   bool
	done     bool
	lastMark time.Duration

	typed  int
	errors int
	events []model.TypingEvent
	table  model.StatsTable
}

// Option configures a Session.
type Option func(*Session)

// WithStats seeds the per-character table. The table is copied.
func WithStats(table model.StatsTable) Option {
	return func(s *Session) { s.table = table.Clone() }
}

// WithHint sets the function choosing the target character for new content.
func WithHint(fn HintFunc) Option {
	return func(s *Session) { s.hint = fn }
}

// WithLineWidth sets the maximum line length passed to the content source.
func WithLineWidth(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.lineWidth = n
		}
	}
}

// WithFinite makes the session end after its first chunk instead of
// generating content forever.
func WithFinite(finite bool) Option {
	return func(s *Session) { s.finite = finite }
}

// WithRetention keeps at most n completed lines behind the cursor.
// Zero keeps everything.
func WithRetention(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.retention = n
		}
	}
}

// WithClock sets the clock used by the session timer.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.timer = NewTimer(now) }
}

// New returns a session with its first chunk of content.
func New(source ContentSource, opts ...Option) *Session {
	s := &Session{
		source:    source,
		lineWidth: defaultLineWidth,
		table:     model.StatsTable{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timer == nil {
		s.timer = NewTimer(nil)
	}
	s.appendContent()
	if len(s.lines) == 0 {
		s.lines = []model.Line{{}}
		s.done = true
		return s
	}
	s.topUp()
	return s
}

func (s *Session) appendContent() int {
	var hint rune
	var hasHint bool
	if s.hint != nil {
		hint, hasHint = s.hint(s.table.Clone())
	}
	lines := s.source.Generate(hint, hasHint, s.lineWidth)
	s.lines = append(s.lines, lines...)
	return len(lines)
}

func (s *Session) topUp() {
	if s.finite {
		return
	}
	for len(s.lines)-s.cursor.Line-1 < linesAhead {
		if s.appendContent() == 0 {
			return
		}
	}
}

// Submit judges r against the character under the cursor, records the
// keystroke, and advances. It reports whether r was an error.
func (s *Session) Submit(r rune) bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		s.timer.Start()
	}

	line := s.lines[s.cursor.Line]
	target := line[s.cursor.Pos].Target
	mistyped := line[s.cursor.Pos].SetTyped(r)

	elapsed := s.timer.Elapsed()
	stats.Update(s.table, target, elapsed-s.lastMark, mistyped)
	s.lastMark = elapsed
	s.events = append(s.events, model.TypingEvent{SinceStart: elapsed, WasError: mistyped})
	s.typed++
	if mistyped {
		s.errors++
	}

	s.cursor.Pos++
	if s.cursor.Pos < len(line) {
		return mistyped
	}
	if s.cursor.Line == len(s.lines)-1 && (s.finite || s.appendContent() == 0) {
		s.done = true
		s.timer.Pause()
		return mistyped
	}
	s.cursor.Line++
	s.cursor.Pos = 0
	s.topUp()
	s.trim()
	return mistyped
}

// Backspace steps back one character and resets it. Deleting the final
// character of a completed session reopens it.
func (s *Session) Backspace() {
	if s.cursor.Line == 0 && s.cursor.Pos == 0 {
		return
	}
	if s.done {
		s.done = false
		if !s.paused {
			s.timer.Start()
		}
	}
	if s.cursor.Pos > 0 {
		s.cursor.Pos--
	} else {
		s.cursor.Line--
		s.cursor.Pos = len(s.lines[s.cursor.Line]) - 1
	}
	s.lines[s.cursor.Line][s.cursor.Pos].Reset()
	s.lastMark = s.timer.Elapsed()
}

func (s *Session) trim() {
	if s.retention == 0 {
		return
	}
	keep := s.retention
	if keep < 1 {
		keep = 1
	}
	drop := s.cursor.Line - keep
	if drop <= 0 {
		return
	}
	s.lines = append([]model.Line(nil), s.lines[drop:]...)
	s.cursor.Line -= drop
}

// Pause stops the timer. Input other than resume is ignored while paused.
func (s *Session) Pause() {
	s.paused = true
	s.timer.Pause()
}

// Resume continues a paused session. The timer restarts only once typing
// has begun.
func (s *Session) Resume() {
	s.paused = false
	if s.started && !s.done {
		s.timer.Start()
	}
}

// Apply routes a key through the state machine.
func (s *Session) Apply(key Key) Outcome {
	if !key.Press || s.done {
		return OutcomeIgnored
	}
	if key.Kind == KeyEscape {
		if s.paused {
			s.Resume()
			return OutcomeResumed
		}
		s.Pause()
		return OutcomePaused
	}
	if s.paused {
		return OutcomeIgnored
	}
	switch key.Kind {
	case KeyRune:
		return s.submitOutcome(key.Rune)
	case KeyEnter:
		return s.submitOutcome('\n')
	case KeyBackspace:
		if s.cursor.Line == 0 && s.cursor.Pos == 0 {
			return OutcomeIgnored
		}
		s.Backspace()
		return OutcomeDeleted
	default:
		return OutcomeIgnored
	}
}

func (s *Session) submitOutcome(r rune) Outcome {
	mistyped := s.Submit(r)
	switch {
	case s.done:
		return OutcomeCompleted
	case mistyped:
		return OutcomeMistyped
	default:
		return OutcomeCorrect
	}
}

// Lines returns the buffer. Callers must not modify it.
func (s *Session) Lines() []model.Line {
	return s.lines
}

// Window returns up to before lines above and after lines below the
// current line, and the index of the current line within the result.
func (s *Session) Window(before, after int) ([]model.Line, int) {
	start := s.cursor.Line - before
	if start < 0 {
		start = 0
	}
	end := s.cursor.Line + after + 1
	if end > len(s.lines) {
		end = len(s.lines)
	}
	return s.lines[start:end], s.cursor.Line - start
}

// Cursor returns the cursor position.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

// Started reports whether any key has been submitted.
func (s *Session) Started() bool {
	return s.started
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Done reports whether a finite session has been completed.
func (s *Session) Done() bool {
	return s.done
}

// Elapsed returns active typing time.
func (s *Session) Elapsed() time.Duration {
	return s.timer.Elapsed()
}

// TypedChars counts every judged keystroke.
func (s *Session) TypedChars() int {
	return s.typed
}

// Errors counts mistyped keystrokes.
func (s *Session) Errors() int {
	return s.errors
}

// CorrectChars counts keystrokes that matched their target.
func (s *Session) CorrectChars() int {
	return s.typed - s.errors
}

// Events returns a copy of the keystroke log.
func (s *Session) Events() []model.TypingEvent {
	return append([]model.TypingEvent(nil), s.events...)
}

// WPM returns words per minute over the active time.
func (s *Session) WPM() float64 {
	return stats.WPM(s.CorrectChars(), s.timer.Elapsed())
}

// Accuracy returns the percentage of correct keystrokes.
func (s *Session) Accuracy() float64 {
	return stats.Accuracy(s.typed, s.errors)
}

// Stats returns a copy of the per-character table.
func (s *Session) Stats() model.StatsTable {
	return s.table.Clone()
}
