// Package model defines shared data structures.
package model

import "time"

// Config defines resolved play settings.
type Config struct {
	LevelsPath     string
	DictionaryPath string
	StartLevel     int
	AutoSubmit     bool
	SoundEnabled   bool
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	LevelID int
	Last    int
}

// WordSpec is a generator input word with its clue.
type WordSpec struct {
	Word    string `toml:"word" yaml:"word"`
	Meaning string `toml:"meaning" yaml:"meaning"`
}

// Direction is the orientation of a placed word.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Delta returns the row and column step between consecutive letters.
func (d Direction) Delta() (int, int) {
	if d == Vertical {
		return 1, 0
	}
	return 0, 1
}

// Perpendicular returns the crossing direction.
func (d Direction) Perpendicular() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// Coord is a grid position.
type Coord struct {
	Row int
	Col int
}

// PlacedWord anchors a word at its first letter.
type PlacedWord struct {
	Word      string
	Meaning   string
	Row       int
	Col       int
	Direction Direction
}

// Coords lists the cells the word occupies, in letter order.
func (p PlacedWord) Coords() []Coord {
	dr, dc := p.Direction.Delta()
	coords := make([]Coord, len(p.Word))
	for i := range coords {
		coords[i] = Coord{Row: p.Row + dr*i, Col: p.Col + dc*i}
	}
	return coords
}

// TargetWord is a word the player must find, with its cells in letter order.
type TargetWord struct {
	Word    string
	Meaning string
	Coords  []Coord
}

// Level is an immutable, validated puzzle template.
type Level struct {
	ID                int
	Title             string
	Difficulty        string
	Rows              int
	Cols              int
	Mask              [][]bool
	Letters           []rune
	TargetWords       []TargetWord
	ExtraWordsAllowed bool
}

// Letter is a wheel tile.
type Letter struct {
	Char  rune
	Index int
}

// Cell is the runtime state of one grid square. Letter is 0 until filled.
type Cell struct {
	Row                int
	Col                int
	Letter             rune
	Filled             bool
	IsPartOfTargetWord bool
}

// GridState holds the playable grid during a session.
type GridState struct {
	Rows  int
	Cols  int
	Cells [][]Cell
	Mask  [][]bool
}

// SelectionPath is the in-progress sequence of wheel slots.
type SelectionPath struct {
	Indices []int
	Word    string
}

// Progress is the persisted player snapshot.
type Progress struct {
	Coins             int
	CompletedLevelIDs []int
	SoundEnabled      bool
}

// LevelResult captures a completed level.
type LevelResult struct {
	RunID       string
	LevelID     int
	StartedAt   time.Time
	EndedAt     time.Time
	CoinsEarned int
	SolvedWords int
	ExtraWords  int
	HintsUsed   int
	DurationMs  int64
}
