package stats

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/typedrill/internal/model"
)

func TestUpdateSeedsNewChar(t *testing.T) {
	table := model.StatsTable{}
	stat := Update(table, 'a', 120*time.Millisecond, false)
	if stat.TypedCount != 1 || stat.ErrorCount != 0 {
		t.Fatalf("unexpected counts: %+v", stat)
	}
	if stat.RollingAvgMs != 120 || stat.Score != 120 {
		t.Fatalf("expected avg and score 120, got %+v", stat)
	}
	if table['a'] != stat {
		t.Fatalf("table not updated: %+v", table['a'])
	}
}

func TestUpdateSeedsMistypedChar(t *testing.T) {
	table := model.StatsTable{}
	stat := Update(table, 'q', 100*time.Millisecond, true)
	if stat.ErrorCount != 1 {
		t.Fatalf("expected error count 1, got %d", stat.ErrorCount)
	}
	if math.IsInf(stat.Score, 0) || !almostEqual(stat.Score, 100/minAccuracy) {
		t.Fatalf("expected floored accuracy score, got %v", stat.Score)
	}
}

func TestUpdateRollingAverage(t *testing.T) {
	table := model.StatsTable{}
	Update(table, 'a', 100*time.Millisecond, false)
	stat := Update(table, 'a', 200*time.Millisecond, false)
	if stat.TypedCount != 2 || stat.RollingAvgMs != 150 {
		t.Fatalf("expected avg 150 over 2, got %+v", stat)
	}
}

func TestErrorRaisesScore(t *testing.T) {
	base := model.StatsTable{'a': {RollingAvgMs: 100, TypedCount: 4, Score: 100}}
	correct := base.Clone()
	wrong := base.Clone()

	good := Update(correct, 'a', 90*time.Millisecond, false)
	bad := Update(wrong, 'a', 90*time.Millisecond, true)

	if bad.ErrorCount != good.ErrorCount+1 {
		t.Fatalf("error count not incremented: good=%d bad=%d", good.ErrorCount, bad.ErrorCount)
	}
	if bad.Score <= good.Score {
		t.Fatalf("expected error score %v > correct score %v", bad.Score, good.Score)
	}
	if base['a'].TypedCount != 4 {
		t.Fatalf("clone shared storage with base")
	}
}

func TestRankWeak(t *testing.T) {
	table := model.StatsTable{
		'a': {Score: 50},
		'b': {Score: 200},
		'c': {Score: 50},
		'd': {Score: 120},
	}
	got := string(RankWeak(table))
	if got != "bdac" {
		t.Fatalf("expected bdac, got %q", got)
	}
}

func TestSelectWeakCharEmpty(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if got := SelectWeakChar(model.StatsTable{}, 5, rnd); got != DefaultWeakChar {
		t.Fatalf("expected default %q, got %q", DefaultWeakChar, got)
	}
}

func TestSelectWeakCharShortlist(t *testing.T) {
	table := model.StatsTable{}
	for i, ch := range "abcdefg" {
		table[ch] = model.CharStat{Score: float64(100 - i)}
	}
	rnd := rand.New(rand.NewSource(7))
	seen := map[rune]bool{}
	for i := 0; i < 500; i++ {
		seen[SelectWeakChar(table, DefaultShortlist, rnd)] = true
	}
	for _, ch := range "abcde" {
		if !seen[ch] {
			t.Fatalf("expected %q to be selected", ch)
		}
	}
	if seen['f'] || seen['g'] {
		t.Fatalf("selected outside shortlist: %v", seen)
	}
}

func TestSelectorAlwaysHints(t *testing.T) {
	sel := Selector(3, rand.New(rand.NewSource(1)))
	ch, ok := sel(model.StatsTable{'x': {Score: 1}})
	if !ok || ch != 'x' {
		t.Fatalf("expected x, got %q %v", ch, ok)
	}
}
