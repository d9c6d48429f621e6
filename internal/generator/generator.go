// Package generator builds typing text sequences.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/splitter"
	"github.com/verte-zerg/typedrill/internal/wordlist"
)

const (
	defaultWordCount  = 10
	defaultWeakFactor = 2.0
)

// Generator produces practice content from a corpus.
type Generator struct {
	corpus     wordlist.Corpus
	rnd        *rand.Rand
	mode       model.Mode
	difficulty model.Difficulty
	wordCount  int
	weakFocus  bool
	weakFactor float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(rnd *rand.Rand) Option {
	return func(g *Generator) { g.rnd = rnd }
}

// WithMode selects word or snippet composition.
func WithMode(mode model.Mode) Option {
	return func(g *Generator) { g.mode = mode }
}

// WithDifficulty sets the transform level applied in word mode.
func WithDifficulty(d model.Difficulty) Option {
	return func(g *Generator) { g.difficulty = d }
}

// WithWordCount sets how many words each generated chunk has in word mode.
func WithWordCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.wordCount = n
		}
	}
}

// WithWeakFocus biases word choice toward the hint character by factor.
func WithWeakFocus(enabled bool, factor float64) Option {
	return func(g *Generator) {
		g.weakFocus = enabled
		if factor >= 0 {
			g.weakFactor = factor
		}
	}
}

// New returns a Generator for corpus. It fails when the corpus has nothing
// for the selected mode.
func New(corpus wordlist.Corpus, opts ...Option) (*Generator, error) {
	g := &Generator{
		corpus:     corpus,
		wordCount:  defaultWordCount,
		weakFactor: defaultWeakFactor,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch g.mode {
	case model.ModeSnippets:
		if len(corpus.Snippets) == 0 {
			return nil, fmt.Errorf("%w: no snippets loaded", wordlist.ErrCorpusUnavailable)
		}
	default:
		if len(corpus.Words) == 0 {
			return nil, fmt.Errorf("%w: no words loaded", wordlist.ErrCorpusUnavailable)
		}
	}
	return g, nil
}

// Generate composes a chunk of text, optionally targeting hint, and splits
// it into lines of at most maxLen characters.
func (g *Generator) Generate(hint rune, hasHint bool, maxLen int) []model.Line {
	return splitter.Split(g.Text(hint, hasHint), maxLen)
}

// Text composes a chunk of text without splitting it.
func (g *Generator) Text(hint rune, hasHint bool) string {
	if g.mode == model.ModeSnippets {
		if !hasHint {
			return g.corpus.Snippets[g.rnd.Intn(len(g.corpus.Snippets))]
		}
		return SelectSnippet(g.corpus.Snippets, hint, g.rnd)
	}
	var words []string
	if g.weakFocus && hasHint {
		words = g.weightedWords(hint)
	} else {
		words = g.uniformWords()
	}
	return strings.Join(Transform(words, g.difficulty, g.rnd), " ")
}

func (g *Generator) uniformWords() []string {
	result := make([]string, 0, g.wordCount)
	for i := 0; i < g.wordCount; i++ {
		result = append(result, g.corpus.Words[g.rnd.Intn(len(g.corpus.Words))])
	}
	return result
}

func (g *Generator) weightedWords(hint rune) []string {
	words := g.corpus.Words
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		w := 1.0 + float64(strings.Count(word, string(hint)))*g.weakFactor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, g.wordCount)
	for i := 0; i < g.wordCount; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r < acc {
				idx = j
				break
			}
		}
		result = append(result, words[idx])
	}
	return result
}

// SelectSnippet returns the snippet containing c most often. Ties, and the
// case where no snippet contains c, are broken uniformly at random.
func SelectSnippet(snippets []string, c rune, rnd *rand.Rand) string {
	best := 0
	var candidates []int
	for i, s := range snippets {
		n := strings.Count(s, string(c))
		switch {
		case n > best:
			best = n
			candidates = append(candidates[:0], i)
		case n == best && n > 0:
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return snippets[rnd.Intn(len(snippets))]
	}
	return snippets[candidates[rnd.Intn(len(candidates))]]
}
