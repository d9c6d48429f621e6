// Package stats contains statistics calculations and reporting.
package stats

import (
	"time"

	"github.com/verte-zerg/typedrill/internal/model"
)

// minAccuracy keeps the score finite for characters that were never typed correctly.
const minAccuracy = 0.01

// Update folds one judged keystroke for target into table and returns the
// new record. latency is the time since the previous accepted keystroke.
func Update(table model.StatsTable, target rune, latency time.Duration, mistyped bool) model.CharStat {
	ms := float64(latency) / float64(time.Millisecond)
	stat, ok := table[target]
	if !ok {
		stat = model.CharStat{RollingAvgMs: ms, TypedCount: 1}
	} else {
		stat.RollingAvgMs = (stat.RollingAvgMs*float64(stat.TypedCount) + ms) / float64(stat.TypedCount+1)
		stat.TypedCount++
	}
	if mistyped {
		stat.ErrorCount++
	}
	stat.Score = Score(stat)
	table[target] = stat
	return stat
}

// Score is the rolling latency divided by accuracy; higher is weaker.
func Score(stat model.CharStat) float64 {
	return stat.RollingAvgMs / CharAccuracy(stat)
}

// CharAccuracy is the fraction of correct keystrokes, floored above zero.
func CharAccuracy(stat model.CharStat) float64 {
	if stat.TypedCount == 0 {
		return 1
	}
	acc := float64(stat.TypedCount-min(stat.ErrorCount, stat.TypedCount)) / float64(stat.TypedCount)
	if acc < minAccuracy {
		return minAccuracy
	}
	return acc
}
