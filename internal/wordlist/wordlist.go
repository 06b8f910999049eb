// Package wordlist loads word lists and answers dictionary lookups.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creatorlimen/wordnaija/internal/model"
)

//go:embed default_words.txt
var embeddedWords string

// LoadWords reads one entry per line from the provided file path.
// A line is either WORD or WORD,meaning; blank lines and # comments are skipped.
func LoadWords(path string) ([]model.WordSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ParseWords(file)
}

// DefaultWords returns the bundled word list.
func DefaultWords() []model.WordSpec {
	words, err := ParseWords(strings.NewReader(embeddedWords))
	if err != nil {
		panic(fmt.Sprintf("embedded word list is broken: %v", err))
	}
	return words
}

// ParseWords reads word list entries from r.
func ParseWords(r io.Reader) ([]model.WordSpec, error) {
	var words []model.WordSpec
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, meaning, _ := strings.Cut(text, ",")
		normalized, ok := Normalize(word)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid word %q", line, word)
		}
		words = append(words, model.WordSpec{Word: normalized, Meaning: strings.TrimSpace(meaning)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
