package wordlist

import "strings"

// Normalize trims and upper-cases word and reports whether it is letters A-Z only.
func Normalize(word string) (string, bool) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return "", false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'A' || ch > 'Z' {
			return "", false
		}
	}
	return word, true
}
