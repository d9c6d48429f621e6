// Package wordlist loads practice corpora from files or the embedded defaults.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SnippetSeparator delimits snippets in a snippet file.
const SnippetSeparator = "#!#!#!#!#!"

// ErrCorpusUnavailable reports a missing, unreadable, or empty corpus.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

//go:embed assets/words.txt
var defaultWords string

//go:embed assets/snippets.txt
var defaultSnippets string

// Corpus holds the practice material for a session. It is not modified after loading.
type Corpus struct {
	Words    []string
	Snippets []string
}

// Default returns the embedded corpus.
func Default() (Corpus, error) {
	words, err := ParseWords(strings.NewReader(defaultWords))
	if err != nil {
		return Corpus{}, fmt.Errorf("embedded words: %w", err)
	}
	snippets, err := ParseSnippets(strings.NewReader(defaultSnippets))
	if err != nil {
		return Corpus{}, fmt.Errorf("embedded snippets: %w", err)
	}
	return Corpus{Words: words, Snippets: snippets}, nil
}

// Load builds a corpus, replacing the embedded words or snippets with the
// files at wordsPath and snippetsPath when they are set.
func Load(wordsPath, snippetsPath string) (Corpus, error) {
	corpus, err := Default()
	if err != nil {
		return Corpus{}, err
	}
	if wordsPath != "" {
		if corpus.Words, err = LoadWords(wordsPath); err != nil {
			return Corpus{}, err
		}
	}
	if snippetsPath != "" {
		if corpus.Snippets, err = LoadSnippets(snippetsPath); err != nil {
			return Corpus{}, err
		}
	}
	return corpus, nil
}

// LoadWords reads whitespace separated words from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	words, err := ParseWords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// ParseWords reads a flat word list. Words are NFC normalized, filtered, and
// deduplicated while keeping their first-seen order.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	seen := map[string]struct{}{}
	keep := FilterLetters()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, word := range strings.Fields(norm.NFC.String(scanner.Text())) {
			if !keep(word) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: word list is empty", ErrCorpusUnavailable)
	}
	return words, nil
}

// LoadSnippets reads snippets from the provided file path.
func LoadSnippets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only snippet file.
			_ = cerr
		}
	}()
	snippets, err := ParseSnippets(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snippets, nil
}

// ParseSnippets splits r into snippets. Snippets are separated by
// SnippetSeparator lines; a file without separators is split on blank lines.
func ParseSnippets(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	text := strings.ReplaceAll(norm.NFC.String(string(data)), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	useSeparator := false
	for _, line := range lines {
		if strings.TrimSpace(line) == SnippetSeparator {
			useSeparator = true
			break
		}
	}

	var snippets []string
	var current []string
	flush := func() {
		snippet := strings.Trim(strings.Join(current, "\n"), "\n")
		if strings.TrimSpace(snippet) != "" {
			snippets = append(snippets, strings.TrimRight(snippet, " \t"))
		}
		current = current[:0]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if (useSeparator && trimmed == SnippetSeparator) || (!useSeparator && trimmed == "") {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()

	if len(snippets) == 0 {
		return nil, fmt.Errorf("%w: snippet list is empty", ErrCorpusUnavailable)
	}
	return snippets, nil
}
