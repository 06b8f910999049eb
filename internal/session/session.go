// Package session implements the puzzle play state machine.
//
// Every transition takes a State by value and returns a new State; the input
// is never modified. Rejected player input (unknown words, repeated words,
// hints without enough coins) returns the state unchanged apart from clearing
// the selection where noted.
package session

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/creatorlimen/wordnaija/internal/model"
)

const (
	// TargetReward is awarded for each solved target word.
	TargetReward = 10
	// ExtraReward is awarded for each valid non-target word.
	ExtraReward = 5
	// HintCost is deducted for each revealed letter.
	HintCost = 15
)

// Dictionary validates player words, returning their canonical form.
type Dictionary interface {
	Validate(word string) (string, bool)
}

// State is the full play state for one level.
type State struct {
	Level        *model.Level
	Grid         model.GridState
	Wheel        []model.Letter
	Selection    *model.SelectionPath
	Coins        int
	SoundEnabled bool
	HintsUsed    int

	solved map[string]struct{}
	extras map[string]struct{}
}

// New starts a session on level with the given coin balance.
func New(level *model.Level, coins int, soundEnabled bool) State {
	if coins < 0 {
		coins = 0
	}
	return State{
		Level:        level,
		Grid:         newGrid(level),
		Wheel:        newWheel(level.Letters),
		Coins:        coins,
		SoundEnabled: soundEnabled,
		solved:       map[string]struct{}{},
		extras:       map[string]struct{}{},
	}
}

func newGrid(level *model.Level) model.GridState {
	cells := make([][]model.Cell, level.Rows)
	for r := range cells {
		cells[r] = make([]model.Cell, level.Cols)
		for c := range cells[r] {
			cells[r][c] = model.Cell{Row: r, Col: c, IsPartOfTargetWord: level.Mask[r][c]}
		}
	}
	return model.GridState{Rows: level.Rows, Cols: level.Cols, Cells: cells, Mask: level.Mask}
}

func newWheel(letters []rune) []model.Letter {
	wheel := make([]model.Letter, len(letters))
	for i, r := range letters {
		wheel[i] = model.Letter{Char: r, Index: i}
	}
	return wheel
}

// SelectLetter appends a wheel slot to the selection. A slot already in the
// path is ignored; the same letter from another slot is accepted.
func SelectLetter(s State, wheelIndex int) State {
	if wheelIndex < 0 || wheelIndex >= len(s.Wheel) {
		return s
	}
	path := model.SelectionPath{}
	if s.Selection != nil {
		for _, idx := range s.Selection.Indices {
			if idx == wheelIndex {
				return s
			}
		}
		path.Indices = append(path.Indices, s.Selection.Indices...)
		path.Word = s.Selection.Word
	}
	path.Indices = append(path.Indices, wheelIndex)
	path.Word += string(s.Wheel[wheelIndex].Char)
	s.Selection = &path
	return s
}

// UndoSelection drops the last selected slot.
func UndoSelection(s State) State {
	if s.Selection == nil || len(s.Selection.Indices) <= 1 {
		return ClearSelection(s)
	}
	indices := append([]int(nil), s.Selection.Indices[:len(s.Selection.Indices)-1]...)
	var b strings.Builder
	for _, idx := range indices {
		b.WriteRune(s.Wheel[idx].Char)
	}
	s.Selection = &model.SelectionPath{Indices: indices, Word: b.String()}
	return s
}

// ClearSelection drops the whole selection.
func ClearSelection(s State) State {
	s.Selection = nil
	return s
}

// SubmitWord resolves the current selection against the dictionary.
func SubmitWord(s State, dict Dictionary) State {
	if s.Selection == nil || s.Selection.Word == "" {
		return s
	}
	word := s.Selection.Word
	s = ClearSelection(s)

	canonical, ok := dict.Validate(word)
	if !ok {
		return s
	}
	if _, done := s.solved[canonical]; done {
		return s
	}
	if target, ok := s.target(canonical); ok {
		s.solved = withKey(s.solved, canonical)
		s.Coins += TargetReward
		s.Grid = cloneGrid(s.Grid)
		for i, c := range target.Coords {
			fillCell(&s.Grid, c, []rune(target.Word)[i])
		}
		return s
	}
	if !s.Level.ExtraWordsAllowed {
		return s
	}
	if _, found := s.extras[canonical]; found {
		return s
	}
	s.extras = withKey(s.extras, canonical)
	s.Coins += ExtraReward
	return s
}

// SelectLetterAuto selects a slot and submits the word when it can no longer
// grow into an unsolved target word.
func SelectLetterAuto(s State, wheelIndex int, dict Dictionary) State {
	s = SelectLetter(s, wheelIndex)
	if s.Selection == nil {
		return s
	}
	word := strings.ToUpper(s.Selection.Word)
	if _, ok := s.target(word); ok && !s.Solved(word) {
		return SubmitWord(s, dict)
	}
	if _, ok := dict.Validate(word); !ok {
		return s
	}
	if s.extendsToTarget(word) {
		return s
	}
	return SubmitWord(s, dict)
}

// ShuffleLetters permutes the wheel uniformly and clears the selection.
func ShuffleLetters(s State, rnd *rand.Rand) State {
	wheel := make([]model.Letter, len(s.Wheel))
	copy(wheel, s.Wheel)
	for i := len(wheel) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		wheel[i], wheel[j] = wheel[j], wheel[i]
	}
	for i := range wheel {
		wheel[i].Index = i
	}
	s.Wheel = wheel
	return ClearSelection(s)
}

// RevealHint fills one letter of the first unsolved target word for HintCost
// coins. It never marks the word solved.
func RevealHint(s State) State {
	if s.Coins < HintCost || IsLevelComplete(s) {
		return s
	}
	for _, tw := range s.Level.TargetWords {
		if s.Solved(tw.Word) {
			continue
		}
		letters := []rune(tw.Word)
		for i, c := range tw.Coords {
			if s.Grid.Cells[c.Row][c.Col].Filled {
				continue
			}
			s.Grid = cloneGrid(s.Grid)
			fillCell(&s.Grid, c, letters[i])
			s.Coins -= HintCost
			s.HintsUsed++
			return s
		}
	}
	return s
}

// ResetLevel restarts the current level, keeping coins and settings.
func ResetLevel(s State) State {
	return New(s.Level, s.Coins, s.SoundEnabled)
}

// SetSound toggles the sound preference.
func SetSound(s State, enabled bool) State {
	s.SoundEnabled = enabled
	return s
}

// IsLevelComplete reports whether every target word is solved.
func IsLevelComplete(s State) bool {
	for _, tw := range s.Level.TargetWords {
		if !s.Solved(tw.Word) {
			return false
		}
	}
	return true
}

// CoinsEarnedThisLevel is the reward total for words found on this level.
// It is already included in Coins.
func CoinsEarnedThisLevel(s State) int {
	return TargetReward*len(s.solved) + ExtraReward*len(s.extras)
}

// Solved reports whether word has been solved as a target.
func (s State) Solved(word string) bool {
	_, ok := s.solved[strings.ToUpper(word)]
	return ok
}

// SolvedWords returns the solved target words, sorted.
func (s State) SolvedWords() []string {
	return sortedKeys(s.solved)
}

// ExtraWords returns the extra words found, sorted.
func (s State) ExtraWords() []string {
	return sortedKeys(s.extras)
}

func (s State) target(canonical string) (model.TargetWord, bool) {
	for _, tw := range s.Level.TargetWords {
		if strings.ToUpper(tw.Word) == canonical {
			return tw, true
		}
	}
	return model.TargetWord{}, false
}

func (s State) extendsToTarget(prefix string) bool {
	for _, tw := range s.Level.TargetWords {
		word := strings.ToUpper(tw.Word)
		if len(word) > len(prefix) && strings.HasPrefix(word, prefix) && !s.Solved(word) {
			return true
		}
	}
	return false
}

func fillCell(g *model.GridState, c model.Coord, letter rune) {
	cell := &g.Cells[c.Row][c.Col]
	cell.Letter = letter
	cell.Filled = true
}

func cloneGrid(g model.GridState) model.GridState {
	cells := make([][]model.Cell, len(g.Cells))
	for i, row := range g.Cells {
		cells[i] = append([]model.Cell(nil), row...)
	}
	g.Cells = cells
	return g
}

func withKey(set map[string]struct{}, key string) map[string]struct{} {
	out := make(map[string]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	out[key] = struct{}{}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
