package generator

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typedrill/internal/model"
)

func repeatWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return words
}

func TestTransformLowercaseIsIdentity(t *testing.T) {
	words := []string{"alpha", "beta", "gamma"}
	out := Transform(words, model.Lowercase, rand.New(rand.NewSource(1)))
	assert.Equal(t, words, out)
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	words := repeatWords(50)
	_ = Transform(words, model.Symbols, rand.New(rand.NewSource(1)))
	assert.Equal(t, repeatWords(50), words)
}

func TestTransformUppercaseRate(t *testing.T) {
	words := repeatWords(1000)
	out := Transform(words, model.Uppercase, rand.New(rand.NewSource(7)))
	capitalized := 0
	for _, w := range out {
		switch w {
		case "Word":
			capitalized++
		case "word":
		default:
			t.Fatalf("unexpected word %q", w)
		}
	}
	assert.Equal(t, 200, capitalized)
}

func TestTransformNumbersRate(t *testing.T) {
	words := repeatWords(1000)
	out := Transform(words, model.Numbers, rand.New(rand.NewSource(7)))
	numerals := 0
	for _, w := range out {
		if w == "word" || w == "Word" {
			continue
		}
		require.Len(t, w, 3, "numeral %q", w)
		for _, r := range w {
			require.True(t, unicode.IsDigit(r), "numeral %q", w)
		}
		require.NotEqual(t, byte('0'), w[0])
		numerals++
	}
	assert.Equal(t, 150, numerals)
}

func TestTransformSymbolsRate(t *testing.T) {
	words := repeatWords(2000)
	out := Transform(words, model.Symbols, rand.New(rand.NewSource(11)))
	punctuated := 0
	for _, w := range out {
		trimmed := strings.TrimFunc(w, unicode.IsPunct)
		if trimmed == w {
			continue
		}
		punctuated++
		if trimmed != "word" && trimmed != "Word" {
			_, err := strconv.Atoi(trimmed)
			require.NoError(t, err, "unexpected punctuated word %q", w)
		}
	}
	// 400 words are picked and about 1% of those are left alone.
	assert.InDelta(t, 396, punctuated, 12)
	assert.LessOrEqual(t, punctuated, 400)
}

func TestPunctuateTiers(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	var common, rare, wrapped, untouched int
	for i := 0; i < 10000; i++ {
		w := punctuate(rnd, "x")
		switch {
		case w == "x":
			untouched++
		case len(w) == 2 && strings.ContainsAny(w[1:], ".,"):
			common++
		case len(w) == 2:
			rare++
		default:
			wrapped++
		}
	}
	assert.InDelta(t, 5000, common, 300)
	assert.InDelta(t, 3000, rare, 300)
	assert.InDelta(t, 1900, wrapped, 300)
	assert.InDelta(t, 100, untouched, 80)
}

func TestCapitalizeFirstCodePoint(t *testing.T) {
	assert.Equal(t, "Élan", capitalize("élan"))
	assert.Equal(t, "", capitalize(""))
}
