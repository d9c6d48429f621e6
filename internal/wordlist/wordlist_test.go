package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWordsDedupesAndNormalizes(t *testing.T) {
	words, err := ParseWords(strings.NewReader("cat dog\n\ncat\nDog 42\ncafe\u0301\n"))
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}
	expected := []string{"cat", "dog", "caf\u00e9"}
	if len(words) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
	for i := range expected {
		if words[i] != expected[i] {
			t.Fatalf("expected %q at %d, got %q", expected[i], i, words[i])
		}
	}
	if got := len([]rune(words[2])); got != 4 {
		t.Fatalf("expected composed café to be 4 code points, got %d", got)
	}
}

func TestParseWordsEmpty(t *testing.T) {
	_, err := ParseWords(strings.NewReader("\n  \n123\n"))
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestParseSnippetsSeparator(t *testing.T) {
	input := "first line\nsecond line\n" + SnippetSeparator + "\n\nthird\n\n" + SnippetSeparator + "\n"
	snippets, err := ParseSnippets(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSnippets failed: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d: %q", len(snippets), snippets)
	}
	if snippets[0] != "first line\nsecond line" {
		t.Fatalf("unexpected first snippet: %q", snippets[0])
	}
	if snippets[1] != "third" {
		t.Fatalf("unexpected second snippet: %q", snippets[1])
	}
}

func TestParseSnippetsBlankLines(t *testing.T) {
	snippets, err := ParseSnippets(strings.NewReader("one\ntwo\n\n\nthree  \n"))
	if err != nil {
		t.Fatalf("ParseSnippets failed: %v", err)
	}
	if len(snippets) != 2 || snippets[0] != "one\ntwo" || snippets[1] != "three" {
		t.Fatalf("unexpected snippets: %q", snippets)
	}
}

func TestLoadSnippetsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.txt")
	if err := os.WriteFile(path, []byte(SnippetSeparator+"\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadSnippets(path)
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestDefaultCorpus(t *testing.T) {
	corpus, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(corpus.Words) < 100 {
		t.Fatalf("expected embedded word list, got %d words", len(corpus.Words))
	}
	if len(corpus.Snippets) < 5 {
		t.Fatalf("expected embedded snippets, got %d", len(corpus.Snippets))
	}
	for _, s := range corpus.Snippets {
		if strings.Contains(s, SnippetSeparator) {
			t.Fatalf("separator leaked into snippet %q", s)
		}
	}
}

func TestLoadOverridesWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("cat\ndog\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	corpus, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(corpus.Words) != 2 {
		t.Fatalf("expected custom words, got %v", corpus.Words)
	}
	if len(corpus.Snippets) == 0 {
		t.Fatalf("expected embedded snippets to remain")
	}
}
