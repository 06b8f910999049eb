package wordlist

import "github.com/creatorlimen/wordnaija/internal/model"

// Dictionary answers word validation for sessions.
type Dictionary struct {
	meanings map[string]string
}

// NewDictionary indexes the given entries. Invalid words are skipped.
func NewDictionary(words []model.WordSpec) *Dictionary {
	d := &Dictionary{meanings: make(map[string]string, len(words))}
	for _, w := range words {
		d.Add(w.Word, w.Meaning)
	}
	return d
}

// Add indexes a word, keeping an existing meaning unless the new one is set.
func (d *Dictionary) Add(word, meaning string) {
	canonical, ok := Normalize(word)
	if !ok {
		return
	}
	if prev, exists := d.meanings[canonical]; exists && meaning == "" {
		meaning = prev
	}
	d.meanings[canonical] = meaning
}

// Validate returns the canonical form of word if it is in the dictionary.
// Lookup is case-insensitive and ignores surrounding whitespace.
func (d *Dictionary) Validate(word string) (string, bool) {
	canonical, ok := Normalize(word)
	if !ok {
		return "", false
	}
	if _, ok := d.meanings[canonical]; !ok {
		return "", false
	}
	return canonical, true
}

// Meaning returns the stored meaning of a canonical word.
func (d *Dictionary) Meaning(word string) string {
	canonical, ok := Normalize(word)
	if !ok {
		return ""
	}
	return d.meanings[canonical]
}

// Len returns the number of indexed words.
func (d *Dictionary) Len() int {
	return len(d.meanings)
}
