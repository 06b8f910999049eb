package tui

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/creatorlimen/wordnaija/internal/level"
	"github.com/creatorlimen/wordnaija/internal/model"
	"github.com/creatorlimen/wordnaija/internal/session"
	"github.com/creatorlimen/wordnaija/internal/store"
	"github.com/creatorlimen/wordnaija/internal/wordlist"
)

func testCatalog(t *testing.T) *level.Catalog {
	t.Helper()
	spec := func(words ...string) []model.WordSpec {
		out := make([]model.WordSpec, len(words))
		for i, w := range words {
			out[i] = model.WordSpec{Word: w, Meaning: "meaning of " + w}
		}
		return out
	}
	cat, err := level.NewCatalog([]level.Definition{
		{ID: 1, Title: "Kitchen", Difficulty: "easy", ExtraWords: true, Words: spec("CHOP", "HOT", "POT", "TOP")},
		{ID: 2, Title: "Morning Sun", Difficulty: "easy", Words: spec("SHINE", "SHE", "HEN", "HIS")},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func testDictionary(cat *level.Catalog) *wordlist.Dictionary {
	dict := wordlist.NewDictionary([]model.WordSpec{{Word: "OPT"}})
	for _, w := range cat.Words() {
		dict.Add(w, "")
	}
	return dict
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "wordnaija.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, st *store.Store, cfg model.Config) *Model {
	t.Helper()
	cat := testCatalog(t)
	m, err := NewModel(cfg, cat, testDictionary(cat), st, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	clock := base
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	m.startedAt = base
	return m
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeWord(m *Model, word string) {
	for _, r := range word {
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func enter(m *Model, word string) {
	typeWord(m, word)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestPlayLevelRecordsResult(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, st, model.Config{SoundEnabled: true})
	if m.state.Level.ID != 1 {
		t.Fatalf("expected level 1, got %d", m.state.Level.ID)
	}

	for _, w := range []string{"chop", "hot", "pot"} {
		enter(m, w)
		if session.IsLevelComplete(m.state) {
			t.Fatalf("level complete too early after %s", w)
		}
	}
	enter(m, "top")
	if !session.IsLevelComplete(m.state) {
		t.Fatalf("expected level complete")
	}
	if m.state.Coins != 40 {
		t.Fatalf("expected 40 coins, got %d", m.state.Coins)
	}

	ctx := context.Background()
	results, err := st.ListLevelResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	want := []model.LevelResult{{
		RunID:       m.runID,
		LevelID:     1,
		StartedAt:   base,
		EndedAt:     base.Add(time.Minute),
		CoinsEarned: 40,
		SolvedWords: 4,
		DurationMs:  60000,
	}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}

	progress, err := st.LoadProgress(ctx, model.Progress{})
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if diff := cmp.Diff(model.Progress{Coins: 40, CompletedLevelIDs: []int{1}, SoundEnabled: true}, progress); diff != "" {
		t.Fatalf("unexpected progress (-want +got):\n%s", diff)
	}

	typeWord(m, "c")
	if m.state.Selection != nil {
		t.Fatalf("letters should be ignored once the level is complete")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Level.ID != 2 {
		t.Fatalf("expected level 2 after enter, got %d", m.state.Level.ID)
	}
	if m.state.Coins != 40 {
		t.Fatalf("coins should carry over, got %d", m.state.Coins)
	}
}

func TestFinishAfterLastLevel(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, st, model.Config{StartLevel: 2})
	for _, w := range []string{"shine", "she", "hen", "his"} {
		enter(m, w)
	}
	if !session.IsLevelComplete(m.state) {
		t.Fatalf("expected level complete")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.finished || m.status != "All levels complete" {
		t.Fatalf("expected finished state, got finished=%v status=%q", m.finished, m.status)
	}
	if !strings.Contains(m.View(), "All levels complete") {
		t.Fatalf("view should announce the finish")
	}
}

func TestStartLevelSkipsCompleted(t *testing.T) {
	st := openStore(t)
	if err := st.SaveProgress(context.Background(), model.Progress{Coins: 25, CompletedLevelIDs: []int{1}}); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	m := newTestModel(t, st, model.Config{SoundEnabled: true})
	if m.state.Level.ID != 2 {
		t.Fatalf("expected first unfinished level 2, got %d", m.state.Level.ID)
	}
	if m.state.Coins != 25 {
		t.Fatalf("expected saved coins, got %d", m.state.Coins)
	}
	if m.state.SoundEnabled {
		t.Fatalf("saved sound preference should win over the default")
	}
}

func TestStartLevelMissing(t *testing.T) {
	cat := testCatalog(t)
	_, err := NewModel(model.Config{StartLevel: 9}, cat, testDictionary(cat), openStore(t), rand.New(rand.NewSource(1)))
	if !errors.Is(err, level.ErrLevelNotFound) {
		t.Fatalf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestSubmitStatus(t *testing.T) {
	m := newTestModel(t, openStore(t), model.Config{})

	enter(m, "pho")
	if m.status != "PHO is not in the word list" || m.state.Coins != 0 {
		t.Fatalf("unexpected status %q coins %d", m.status, m.state.Coins)
	}
	enter(m, "opt")
	if m.status != "Bonus word OPT +5" || m.state.Coins != 5 {
		t.Fatalf("unexpected status %q coins %d", m.status, m.state.Coins)
	}
	enter(m, "opt")
	if m.status != "OPT already found" || m.state.Coins != 5 {
		t.Fatalf("unexpected status %q coins %d", m.status, m.state.Coins)
	}
	enter(m, "hot")
	if m.status != "Found HOT +10" || m.state.Coins != 15 {
		t.Fatalf("unexpected status %q coins %d", m.status, m.state.Coins)
	}
}

func TestSelectionKeys(t *testing.T) {
	m := newTestModel(t, openStore(t), model.Config{})

	typeWord(m, "1")
	if m.state.Selection == nil || m.state.Selection.Word != string(m.state.Wheel[0].Char) {
		t.Fatalf("digit should select the first slot, got %+v", m.state.Selection)
	}
	typeWord(m, "1")
	if len(m.state.Selection.Indices) != 1 {
		t.Fatalf("a selected slot cannot be reused: %+v", m.state.Selection)
	}
	typeWord(m, "x9")
	if len(m.state.Selection.Indices) != 1 {
		t.Fatalf("unknown letters and slots should be ignored: %+v", m.state.Selection)
	}
	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.state.Selection != nil {
		t.Fatalf("backspace should undo the only letter")
	}
	typeWord(m, "ch")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Selection != nil {
		t.Fatalf("esc should clear the selection")
	}
	typeWord(m, "ch")
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state.Selection != nil {
		t.Fatalf("shuffle should clear the selection")
	}
}

func TestAutoSubmit(t *testing.T) {
	m := newTestModel(t, openStore(t), model.Config{AutoSubmit: true})
	typeWord(m, "cho")
	if m.state.Selection == nil || m.state.Selection.Word != "CHO" {
		t.Fatalf("partial word should stay selected: %+v", m.state.Selection)
	}
	typeWord(m, "p")
	if !m.state.Solved("CHOP") || m.state.Selection != nil {
		t.Fatalf("exact target should submit immediately")
	}
	if m.status != "Found CHOP +10" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHintAndReset(t *testing.T) {
	m := newTestModel(t, openStore(t), model.Config{})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.status != "A hint costs 15 coins" || m.state.HintsUsed != 0 {
		t.Fatalf("hint without coins should be rejected, status %q", m.status)
	}

	enter(m, "chop")
	enter(m, "hot")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.state.HintsUsed != 1 || m.state.Coins != 5 {
		t.Fatalf("expected one paid hint, got hints=%d coins=%d", m.state.HintsUsed, m.state.Coins)
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if len(m.state.SolvedWords()) != 0 || m.state.Coins != 5 {
		t.Fatalf("reset should clear words and keep coins, got %v coins=%d", m.state.SolvedWords(), m.state.Coins)
	}
}

func TestSoundToggleAndQuitPersist(t *testing.T) {
	st := openStore(t)
	m := newTestModel(t, st, model.Config{SoundEnabled: true})
	enter(m, "hot")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.state.SoundEnabled || m.status != "Sound off" {
		t.Fatalf("expected sound off, status %q", m.status)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}

	progress, err := st.LoadProgress(context.Background(), model.Progress{})
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if progress.Coins != 10 || progress.SoundEnabled || len(progress.CompletedLevelIDs) != 0 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestViewShowsLevel(t *testing.T) {
	m := newTestModel(t, openStore(t), model.Config{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	enter(m, "chop")
	view := m.View()
	for _, want := range []string{"Level 1/2", "Kitchen", "Coins 10", "Words 1/4", "meaning of CHOP"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
