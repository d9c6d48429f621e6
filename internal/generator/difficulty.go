package generator

import (
	"math"
	"math/rand"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typedrill/internal/model"
)

const (
	capsPct   = 0.20
	numberPct = 0.15
	symbolPct = 0.20
)

var (
	commonTerminators = []string{".", ","}
	rareTerminators   = []string{"!", "?", ";", ":"}
	wrappers          = [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}, {`"`, `"`}, {"'", "'"}}
)

// Transform applies the difficulty level to a copy of words. Levels stack:
// Uppercase capitalizes some words, Numbers also swaps some words for
// numerals, and Symbols also adds punctuation. Each stage picks its own
// random subset of words.
func Transform(words []string, level model.Difficulty, rnd *rand.Rand) []string {
	out := make([]string, len(words))
	copy(out, words)
	if level >= model.Uppercase {
		for _, i := range sample(rnd, len(out), capsPct) {
			out[i] = capitalize(out[i])
		}
	}
	if level >= model.Numbers {
		for _, i := range sample(rnd, len(out), numberPct) {
			out[i] = strconv.Itoa(100 + rnd.Intn(900))
		}
	}
	if level >= model.Symbols {
		for _, i := range sample(rnd, len(out), symbolPct) {
			out[i] = punctuate(rnd, out[i])
		}
	}
	return out
}

func sample(rnd *rand.Rand, n int, pct float64) []int {
	k := int(math.Round(float64(n) * pct))
	if k <= 0 {
		return nil
	}
	return rnd.Perm(n)[:k]
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

func punctuate(rnd *rand.Rand, word string) string {
	roll := rnd.Float64()
	switch {
	case roll < 0.50:
		return word + commonTerminators[rnd.Intn(len(commonTerminators))]
	case roll < 0.80:
		return word + rareTerminators[rnd.Intn(len(rareTerminators))]
	case roll < 0.99:
		pair := wrappers[rnd.Intn(len(wrappers))]
		return pair[0] + word + pair[1]
	default:
		return word
	}
}
