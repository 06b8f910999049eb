// Package tui provides the Bubble Tea puzzle interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/creatorlimen/wordnaija/internal/level"
	"github.com/creatorlimen/wordnaija/internal/model"
	"github.com/creatorlimen/wordnaija/internal/session"
	"github.com/creatorlimen/wordnaija/internal/store"
)

// Model implements the Bubble Tea puzzle UI. It owns the session state and
// persists progress and level results around it.
type Model struct {
	config  model.Config
	catalog *level.Catalog
	dict    session.Dictionary
	store   *store.Store
	rnd     *rand.Rand
	now     func() time.Time
	runID   string

	keys keyMap
	help help.Model

	width  int
	height int

	state     session.State
	progress  model.Progress
	startedAt time.Time
	recorded  bool
	finished  bool
	status    string
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	filledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	wheelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	clueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel loads saved progress and opens the starting level.
func NewModel(cfg model.Config, catalog *level.Catalog, dict session.Dictionary, st *store.Store, rnd *rand.Rand) (*Model, error) {
	m := &Model{
		config:  cfg,
		catalog: catalog,
		dict:    dict,
		store:   st,
		rnd:     rnd,
		now:     time.Now,
		runID:   uuid.NewString(),
		keys:    newKeyMap(),
		help:    help.New(),
	}
	progress, err := st.LoadProgress(context.Background(), model.Progress{SoundEnabled: cfg.SoundEnabled})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load progress; starting fresh")
		progress = model.Progress{SoundEnabled: cfg.SoundEnabled}
	}
	m.progress = progress
	if err := m.loadLevel(startLevelID(catalog, progress, cfg.StartLevel)); err != nil {
		return nil, err
	}
	return m, nil
}

// startLevelID picks the requested level, else the first level not yet
// completed, else the first level.
func startLevelID(catalog *level.Catalog, progress model.Progress, requested int) int {
	if requested > 0 {
		return requested
	}
	for _, def := range catalog.Definitions() {
		if !slices.Contains(progress.CompletedLevelIDs, def.ID) {
			return def.ID
		}
	}
	return catalog.FirstID()
}

func (m *Model) loadLevel(id int) error {
	lvl, err := m.catalog.LoadLevel(id)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	m.state = session.New(lvl, m.progress.Coins, m.progress.SoundEnabled)
	m.startedAt = m.now()
	m.recorded = false
	m.status = ""
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.saveProgress()
		return m, tea.Quit
	}
	if m.finished {
		return m, nil
	}
	if session.IsLevelComplete(m.state) {
		if key.Matches(msg, m.keys.Submit) {
			m.advance()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
	case key.Matches(msg, m.keys.Undo):
		m.state = session.UndoSelection(m.state)
	case key.Matches(msg, m.keys.Clear):
		m.state = session.ClearSelection(m.state)
	case key.Matches(msg, m.keys.Shuffle):
		m.state = session.ShuffleLetters(m.state, m.rnd)
	case key.Matches(msg, m.keys.Hint):
		m.hint()
	case key.Matches(msg, m.keys.Reset):
		m.state = session.ResetLevel(m.state)
		m.status = "Level reset"
	case key.Matches(msg, m.keys.Sound):
		m.state = session.SetSound(m.state, !m.state.SoundEnabled)
		m.status = "Sound " + onOff(m.state.SoundEnabled)
		m.saveProgress()
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.handleRune(r)
			if session.IsLevelComplete(m.state) {
				break
			}
		}
	}
	return m, nil
}

func (m *Model) handleRune(r rune) {
	var idx int
	if r >= '1' && r <= '9' {
		idx = int(r - '1')
	} else {
		idx = m.freeSlot(unicode.ToUpper(r))
	}
	if idx < 0 || idx >= len(m.state.Wheel) {
		return
	}
	if !m.config.AutoSubmit {
		m.state = session.SelectLetter(m.state, idx)
		return
	}
	before := m.state
	var word string
	if before.Selection != nil {
		word = before.Selection.Word
	}
	word += string(m.state.Wheel[idx].Char)
	m.state = session.SelectLetterAuto(m.state, idx, m.dict)
	if m.state.Selection == nil {
		m.afterSubmit(before, word)
	}
}

// freeSlot returns the first wheel slot showing r that is not already selected.
func (m *Model) freeSlot(r rune) int {
	for _, letter := range m.state.Wheel {
		if letter.Char != r {
			continue
		}
		if m.state.Selection != nil && slices.Contains(m.state.Selection.Indices, letter.Index) {
			continue
		}
		return letter.Index
	}
	return -1
}

func (m *Model) submit() {
	if m.state.Selection == nil {
		return
	}
	before := m.state
	word := before.Selection.Word
	m.state = session.SubmitWord(m.state, m.dict)
	m.afterSubmit(before, word)
}

func (m *Model) afterSubmit(before session.State, word string) {
	m.status = describeSubmit(before, m.state, word, m.dict)
	if session.IsLevelComplete(m.state) {
		m.completeLevel()
	}
}

func describeSubmit(before, after session.State, word string, dict session.Dictionary) string {
	switch {
	case len(after.SolvedWords()) > len(before.SolvedWords()):
		return fmt.Sprintf("Found %s +%d", word, session.TargetReward)
	case len(after.ExtraWords()) > len(before.ExtraWords()):
		return fmt.Sprintf("Bonus word %s +%d", word, session.ExtraReward)
	}
	canonical, ok := dict.Validate(word)
	switch {
	case !ok:
		return fmt.Sprintf("%s is not in the word list", word)
	case before.Solved(canonical) || slices.Contains(before.ExtraWords(), canonical):
		return fmt.Sprintf("%s already found", canonical)
	default:
		return fmt.Sprintf("%s is not part of this puzzle", canonical)
	}
}

func (m *Model) hint() {
	before := m.state
	m.state = session.RevealHint(m.state)
	if m.state.HintsUsed == before.HintsUsed {
		m.status = fmt.Sprintf("A hint costs %d coins", session.HintCost)
		return
	}
	m.status = fmt.Sprintf("Hint revealed -%d", session.HintCost)
}

func (m *Model) completeLevel() {
	if m.recorded {
		return
	}
	m.recorded = true
	endedAt := m.now()
	result := model.LevelResult{
		RunID:       m.runID,
		LevelID:     m.state.Level.ID,
		StartedAt:   m.startedAt,
		EndedAt:     endedAt,
		CoinsEarned: session.CoinsEarnedThisLevel(m.state),
		SolvedWords: len(m.state.SolvedWords()),
		ExtraWords:  len(m.state.ExtraWords()),
		HintsUsed:   m.state.HintsUsed,
		DurationMs:  endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.store.InsertLevelResult(context.Background(), result); err != nil {
		log.Error().Err(err).Int("level", result.LevelID).Msg("failed to save level result")
	}
	if !slices.Contains(m.progress.CompletedLevelIDs, result.LevelID) {
		m.progress.CompletedLevelIDs = append(m.progress.CompletedLevelIDs, result.LevelID)
	}
	m.saveProgress()
}

func (m *Model) saveProgress() {
	m.progress.Coins = m.state.Coins
	m.progress.SoundEnabled = m.state.SoundEnabled
	if err := m.store.SaveProgress(context.Background(), m.progress); err != nil {
		log.Error().Err(err).Msg("failed to save progress")
	}
}

func (m *Model) advance() {
	next, ok := m.catalog.NextID(m.state.Level.ID)
	if !ok {
		m.finished = true
		m.status = "All levels complete"
		return
	}
	if err := m.loadLevel(next); err != nil {
		log.Error().Err(err).Int("level", next).Msg("failed to open next level")
		m.finished = true
		m.status = err.Error()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), "", renderGrid(m.state.Grid), ""}
	switch {
	case m.finished:
		sections = append(sections, titleStyle.Render(m.status))
	case session.IsLevelComplete(m.state):
		sections = append(sections, titleStyle.Render(fmt.Sprintf(
			"Level complete! +%d coins. Press enter to continue.", session.CoinsEarnedThisLevel(m.state))))
	default:
		sections = append(sections, renderWheel(m.state.Wheel, m.state.Selection), m.renderSelection())
		if m.status != "" {
			sections = append(sections, statusStyle.Render(m.status))
		}
	}
	if clues := m.renderClues(); clues != "" {
		sections = append(sections, "", clues)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.help.View(m.keys)
	}
	footer := footerStyle.Render(m.help.View(m.keys))
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	lvl := m.state.Level
	title := fmt.Sprintf("Level %d/%d  %s", lvl.ID, m.catalog.TotalLevels(), lvl.Title)
	if lvl.Difficulty != "" {
		title += " (" + lvl.Difficulty + ")"
	}
	info := fmt.Sprintf("Coins %d  Words %d/%d  Sound %s",
		m.state.Coins, len(m.state.SolvedWords()), len(lvl.TargetWords), onOff(m.state.SoundEnabled))
	return titleStyle.Render(title) + "\n" + footerStyle.Render(info)
}

func (m *Model) renderSelection() string {
	if m.state.Selection == nil {
		return "> "
	}
	return "> " + m.state.Selection.Word
}

// renderClues lists the meanings of solved words.
func (m *Model) renderClues() string {
	width := m.width * 7 / 10
	var lines []string
	for _, tw := range m.state.Level.TargetWords {
		if !m.state.Solved(tw.Word) || tw.Meaning == "" {
			continue
		}
		for _, line := range wrapText(tw.Word+": "+tw.Meaning, width) {
			lines = append(lines, clueStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
