// Package level assembles generated skeletons into validated levels.
package level

import (
	"fmt"

	"github.com/creatorlimen/wordnaija/internal/generator"
	"github.com/creatorlimen/wordnaija/internal/model"
)

// InvalidLevelError reports a structurally broken level.
type InvalidLevelError struct {
	LevelID int
	Reason  string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid level %d: %s", e.LevelID, e.Reason)
}

// Meta carries the level metadata attached during assembly.
type Meta struct {
	ID                int
	Title             string
	Difficulty        string
	ExtraWordsAllowed bool
	// Letters overrides the generated letter pool when non-empty.
	Letters []rune
}

// Build generates and assembles the level described by def.
func Build(def Definition) (*model.Level, error) {
	sk, err := generator.Generate(def.Words)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", def.ID, err)
	}
	return Assemble(def.Meta(), sk)
}

// Assemble wraps a skeleton into a level and validates it.
func Assemble(meta Meta, sk generator.Skeleton) (*model.Level, error) {
	letters := sk.Letters
	if len(meta.Letters) > 0 {
		letters = meta.Letters
	}
	lvl := &model.Level{
		ID:                meta.ID,
		Title:             meta.Title,
		Difficulty:        meta.Difficulty,
		Rows:              sk.Rows,
		Cols:              sk.Cols,
		Mask:              cloneMask(sk.Mask),
		Letters:           append([]rune(nil), letters...),
		TargetWords:       cloneTargets(sk.Words),
		ExtraWordsAllowed: meta.ExtraWordsAllowed,
	}
	if err := Validate(lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

// Validate checks the structural invariants a session relies on.
func Validate(l *model.Level) error {
	invalid := func(format string, args ...any) error {
		return &InvalidLevelError{LevelID: l.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if l.Rows <= 0 || l.Cols <= 0 {
		return invalid("grid dimensions must be positive, got %dx%d", l.Rows, l.Cols)
	}
	if len(l.Mask) != l.Rows {
		return invalid("mask has %d rows, want %d", len(l.Mask), l.Rows)
	}
	for r, row := range l.Mask {
		if len(row) != l.Cols {
			return invalid("mask row %d has %d columns, want %d", r, len(row), l.Cols)
		}
	}
	if len(l.TargetWords) == 0 {
		return invalid("no target words")
	}
	pool := map[rune]int{}
	for _, r := range l.Letters {
		pool[r]++
	}
	for _, tw := range l.TargetWords {
		runes := []rune(tw.Word)
		if len(tw.Coords) != len(runes) {
			return invalid("word %s has %d coordinates for %d letters", tw.Word, len(tw.Coords), len(runes))
		}
		for _, c := range tw.Coords {
			if c.Row < 0 || c.Row >= l.Rows || c.Col < 0 || c.Col >= l.Cols {
				return invalid("word %s coordinate (%d,%d) out of bounds", tw.Word, c.Row, c.Col)
			}
			if !l.Mask[c.Row][c.Col] {
				return invalid("word %s coordinate (%d,%d) is blocked", tw.Word, c.Row, c.Col)
			}
		}
		if missing, ok := spellable(runes, pool); !ok {
			return invalid("letter pool cannot spell %s (missing %c)", tw.Word, missing)
		}
	}
	return nil
}

// spellable consumes pool letters without replacement.
func spellable(word []rune, pool map[rune]int) (rune, bool) {
	remaining := make(map[rune]int, len(pool))
	for r, n := range pool {
		remaining[r] = n
	}
	for _, r := range word {
		if remaining[r] == 0 {
			return r, false
		}
		remaining[r]--
	}
	return 0, true
}

func cloneMask(mask [][]bool) [][]bool {
	out := make([][]bool, len(mask))
	for i, row := range mask {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

func cloneTargets(words []model.TargetWord) []model.TargetWord {
	out := make([]model.TargetWord, len(words))
	for i, tw := range words {
		tw.Coords = append([]model.Coord(nil), tw.Coords...)
		out[i] = tw
	}
	return out
}
