// Package generator builds crossword skeletons from word lists.
package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/creatorlimen/wordnaija/internal/model"
)

var (
	// ErrNoWords is returned when the input list is empty.
	ErrNoWords = errors.New("no words to place")
	// ErrInvalidWord is returned for words containing anything but letters A-Z.
	ErrInvalidWord = errors.New("invalid word")
	// ErrDuplicateWord is returned when the same word appears twice.
	ErrDuplicateWord = errors.New("duplicate word")
)

// GenerationError reports a word that could not be placed within the retry budget.
type GenerationError struct {
	Word      string
	Placed    []string
	Remaining []string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("unable to place word %q (placed %d, unplaced: %s)",
		e.Word, len(e.Placed), strings.Join(e.Remaining, ", "))
}

// Skeleton is a placed crossword normalized to a zero-based origin.
type Skeleton struct {
	Rows       int
	Cols       int
	Mask       [][]bool
	Letters    []rune
	Words      []model.TargetWord
	Placements []model.PlacedWord
}

// grid is the sparse letter mapping built during placement.
type grid struct {
	cells      map[model.Coord]byte
	placements []model.PlacedWord
}

func (g *grid) empty(r, c int) bool {
	_, ok := g.cells[model.Coord{Row: r, Col: c}]
	return !ok
}

// Generate places every word into a connected crossword or fails.
// The result is deterministic for a given input order.
func Generate(words []model.WordSpec) (Skeleton, error) {
	specs, err := normalize(words)
	if err != nil {
		return Skeleton{}, err
	}

	sorted := make([]model.WordSpec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Word) > len(sorted[j].Word)
	})

	g := &grid{cells: map[model.Coord]byte{}}
	g.commit(model.PlacedWord{
		Word:      sorted[0].Word,
		Meaning:   sorted[0].Meaning,
		Direction: model.Horizontal,
	})

	worklist := sorted[1:]
	retries := 0
	for len(worklist) > 0 {
		placed := false
		for i, spec := range worklist {
			p, ok := g.findBestPlacement(spec)
			if !ok {
				continue
			}
			g.commit(p)
			worklist = append(worklist[:i:i], worklist[i+1:]...)
			placed = true
			break
		}
		if placed {
			retries = 0
			continue
		}
		if retries >= 2*len(worklist) {
			return Skeleton{}, g.failure(worklist)
		}
		worklist = append(worklist[1:], worklist[0])
		retries++
	}

	return g.skeleton(specs), nil
}

func normalize(words []model.WordSpec) ([]model.WordSpec, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]model.WordSpec, 0, len(words))
	for _, w := range words {
		word := strings.ToUpper(strings.TrimSpace(w.Word))
		if word == "" {
			return nil, fmt.Errorf("%w: empty word", ErrInvalidWord)
		}
		for i := 0; i < len(word); i++ {
			if word[i] < 'A' || word[i] > 'Z' {
				return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w.Word)
			}
		}
		if _, ok := seen[word]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
		}
		seen[word] = struct{}{}
		out = append(out, model.WordSpec{Word: word, Meaning: strings.TrimSpace(w.Meaning)})
	}
	return out, nil
}

// findBestPlacement returns the first valid crossing in scan order.
func (g *grid) findBestPlacement(spec model.WordSpec) (model.PlacedWord, bool) {
	word := spec.Word
	for _, pw := range g.placements {
		dir := pw.Direction.Perpendicular()
		for i := 0; i < len(word); i++ {
			for j := 0; j < len(pw.Word); j++ {
				if word[i] != pw.Word[j] {
					continue
				}
				row, col := pw.Row, pw.Col
				if pw.Direction == model.Horizontal {
					row -= i
					col += j
				} else {
					row += j
					col -= i
				}
				if g.canPlace(word, row, col, dir) {
					return model.PlacedWord{
						Word:      word,
						Meaning:   spec.Meaning,
						Row:       row,
						Col:       col,
						Direction: dir,
					}, true
				}
			}
		}
	}
	return model.PlacedWord{}, false
}

func (g *grid) canPlace(word string, row, col int, dir model.Direction) bool {
	dr, dc := dir.Delta()
	if !g.empty(row-dr, col-dc) {
		return false
	}
	if !g.empty(row+dr*len(word), col+dc*len(word)) {
		return false
	}
	for k := 0; k < len(word); k++ {
		r, c := row+dr*k, col+dc*k
		if existing, ok := g.cells[model.Coord{Row: r, Col: c}]; ok {
			if existing != word[k] {
				return false
			}
			continue
		}
		// New cell: both side neighbours must be free.
		if !g.empty(r+dc, c+dr) || !g.empty(r-dc, c-dr) {
			return false
		}
	}
	return true
}

func (g *grid) commit(p model.PlacedWord) {
	for i, coord := range p.Coords() {
		g.cells[coord] = p.Word[i]
	}
	g.placements = append(g.placements, p)
}

func (g *grid) failure(worklist []model.WordSpec) error {
	placed := make([]string, len(g.placements))
	for i, p := range g.placements {
		placed[i] = p.Word
	}
	remaining := make([]string, len(worklist))
	for i, w := range worklist {
		remaining[i] = w.Word
	}
	return &GenerationError{Word: worklist[0].Word, Placed: placed, Remaining: remaining}
}

func (g *grid) skeleton(specs []model.WordSpec) Skeleton {
	minRow, minCol := 0, 0
	maxRow, maxCol := 0, 0
	first := true
	for coord := range g.cells {
		if first {
			minRow, maxRow, minCol, maxCol = coord.Row, coord.Row, coord.Col, coord.Col
			first = false
			continue
		}
		minRow = min(minRow, coord.Row)
		maxRow = max(maxRow, coord.Row)
		minCol = min(minCol, coord.Col)
		maxCol = max(maxCol, coord.Col)
	}

	rows := maxRow - minRow + 1
	cols := maxCol - minCol + 1
	mask := make([][]bool, rows)
	for r := range mask {
		mask[r] = make([]bool, cols)
	}
	for coord := range g.cells {
		mask[coord.Row-minRow][coord.Col-minCol] = true
	}

	placements := make([]model.PlacedWord, len(g.placements))
	targets := make([]model.TargetWord, len(g.placements))
	for i, p := range g.placements {
		p.Row -= minRow
		p.Col -= minCol
		placements[i] = p
		targets[i] = model.TargetWord{Word: p.Word, Meaning: p.Meaning, Coords: p.Coords()}
	}

	return Skeleton{
		Rows:       rows,
		Cols:       cols,
		Mask:       mask,
		Letters:    letterPool(specs),
		Words:      targets,
		Placements: placements,
	}
}

// letterPool returns distinct letters in order of first appearance.
func letterPool(specs []model.WordSpec) []rune {
	seen := map[rune]struct{}{}
	var pool []rune
	for _, spec := range specs {
		for _, r := range spec.Word {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			pool = append(pool, r)
		}
	}
	return pool
}
