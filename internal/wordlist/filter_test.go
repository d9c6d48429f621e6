package wordlist

import "testing"

func TestFilterLetters(t *testing.T) {
	filter := FilterLetters()
	for _, word := range []string{"hello", "résumé", "naïve"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass letter filter", word)
		}
	}
	for _, word := range []string{"", "Hello", "don’t", "co-op", "abc1", "abcdefghijklmnopqrstuvwxyz"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
