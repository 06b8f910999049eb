package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creatorlimen/wordnaija/internal/model"
	"github.com/creatorlimen/wordnaija/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "wordnaija.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		if _, err := st.InsertLevelResult(ctx, model.LevelResult{
			RunID:       "run",
			LevelID:     i + 1,
			StartedAt:   start,
			EndedAt:     end,
			CoinsEarned: 40,
			SolvedWords: 4,
			DurationMs:  end.Sub(start).Milliseconds(),
		}); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}
	if err := st.SaveProgress(ctx, model.Progress{Coins: 120, CompletedLevelIDs: []int{1, 2, 3}}); err != nil {
		t.Fatalf("save progress: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].LevelID != 2 || report.Results[1].LevelID != 3 {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	if report.Progress.Coins != 120 {
		t.Fatalf("expected 120 coins, got %d", report.Progress.Coins)
	}
}

func TestSummarize(t *testing.T) {
	results := []model.LevelResult{
		{LevelID: 1, CoinsEarned: 40, ExtraWords: 1, HintsUsed: 0, DurationMs: 60000},
		{LevelID: 1, CoinsEarned: 45, ExtraWords: 2, HintsUsed: 1, DurationMs: 30000},
		{LevelID: 2, CoinsEarned: 50, ExtraWords: 0, HintsUsed: 2, DurationMs: 90000},
	}
	s := Summarize(results)
	if s.Levels != 3 || s.Distinct != 2 || s.CoinsEarned != 135 || s.ExtraWords != 3 || s.HintsUsed != 3 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.AvgDuration != time.Minute || s.BestDuration != 30*time.Second {
		t.Fatalf("unexpected durations: avg %s best %s", s.AvgDuration, s.BestDuration)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatalf("expected zero summary for no results")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	report := Report{
		Progress: model.Progress{Coins: 75, CompletedLevelIDs: []int{1}},
		Results:  []model.LevelResult{{LevelID: 1, CoinsEarned: 45, DurationMs: 65000}},
	}
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Coins: 75", "Completed levels: 1", "Levels played: 1 (1 distinct)", "Avg time: 1:05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, Report{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No level results found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}
