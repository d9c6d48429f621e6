package wordlist

import (
	"unicode"
	"unicode/utf8"
)

const maxWordLen = 20

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterLetters keeps lowercase alphabetic words of a typeable length, so that
// capitals, digits and punctuation only appear when a difficulty adds them.
func FilterLetters() FilterFunc {
	return func(word string) bool {
		if word == "" || utf8.RuneCountInString(word) > maxWordLen {
			return false
		}
		for _, r := range word {
			if !unicode.IsLetter(r) || unicode.IsUpper(r) {
				return false
			}
		}
		return true
	}
}
