package stats

import (
	"math/rand"
	"sort"

	"github.com/verte-zerg/typedrill/internal/model"
)

// DefaultWeakChar is used before any stats exist.
const DefaultWeakChar = 'j'

// DefaultShortlist is how many of the weakest characters are sampled from.
const DefaultShortlist = 5

// RankWeak orders characters from weakest to strongest by score.
func RankWeak(table model.StatsTable) []rune {
	chars := make([]rune, 0, len(table))
	for ch := range table {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool {
		si, sj := table[chars[i]].Score, table[chars[j]].Score
		if si == sj {
			return chars[i] < chars[j]
		}
		return si > sj
	})
	return chars
}

// SelectWeakChar picks uniformly among the top weakest characters so that
// practice rotates over the weak set instead of fixating on one character.
func SelectWeakChar(table model.StatsTable, top int, rnd *rand.Rand) rune {
	ranked := RankWeak(table)
	if len(ranked) == 0 {
		return DefaultWeakChar
	}
	if top <= 0 {
		top = DefaultShortlist
	}
	if top > len(ranked) {
		top = len(ranked)
	}
	return ranked[rnd.Intn(top)]
}

// Selector returns a hint function over a table snapshot, suitable for a
// session's content requests.
func Selector(top int, rnd *rand.Rand) func(model.StatsTable) (rune, bool) {
	return func(table model.StatsTable) (rune, bool) {
		return SelectWeakChar(table, top, rnd), true
	}
}
