// Package model defines shared data structures.
package model

import "time"

// Mode selects how practice content is composed.
type Mode int

const (
	// ModeWords joins random words from a word list.
	ModeWords Mode = iota
	// ModeSnippets uses pre-authored snippets verbatim.
	ModeSnippets
)

func (m Mode) String() string {
	if m == ModeSnippets {
		return "snippets"
	}
	return "words"
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "words", "":
		return ModeWords, true
	case "snippets":
		return ModeSnippets, true
	}
	return ModeWords, false
}

// Config defines practice settings.
type Config struct {
	Mode         Mode
	Words        int
	ChunkWords   int
	Difficulty   Difficulty
	Highlight    Highlight
	LineWidth    int
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	Seed         int64
	WordsPath    string
	SnippetsPath string
	StatsBackend string
	StatsPath    string
	LogLevel     string
}

// StatsConfig defines options for the stats command.
type StatsConfig struct {
	Backend string
	Path    string
	Chars   string
	Top     int
}

// CharStat is the persisted per-character performance record.
// Score is latency divided by accuracy; higher is weaker.
type CharStat struct {
	RollingAvgMs float64 `toml:"rolling_avg_ms"`
	TypedCount   uint64  `toml:"typed_count"`
	ErrorCount   uint64  `toml:"error_count"`
	Score        float64 `toml:"score"`
}

// StatsTable maps a target character to its stats.
type StatsTable map[rune]CharStat

// Clone returns an independent copy of the table.
func (t StatsTable) Clone() StatsTable {
	out := make(StatsTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// TypingEvent is one judged keystroke in a session's time series.
type TypingEvent struct {
	SinceStart time.Duration
	WasError   bool
}
