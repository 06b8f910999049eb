// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/creatorlimen/wordnaija/internal/model"
)

// Summary aggregates level results.
type Summary struct {
	Levels       int
	Distinct     int
	CoinsEarned  int
	ExtraWords   int
	HintsUsed    int
	AvgDuration  time.Duration
	BestDuration time.Duration
}

// Summarize computes totals over results.
func Summarize(results []model.LevelResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}
	distinct := map[int]struct{}{}
	var total int64
	best := int64(-1)
	for _, r := range results {
		distinct[r.LevelID] = struct{}{}
		s.CoinsEarned += r.CoinsEarned
		s.ExtraWords += r.ExtraWords
		s.HintsUsed += r.HintsUsed
		total += r.DurationMs
		if best < 0 || r.DurationMs < best {
			best = r.DurationMs
		}
	}
	s.Levels = len(results)
	s.Distinct = len(distinct)
	s.AvgDuration = time.Duration(total/int64(len(results))) * time.Millisecond
	s.BestDuration = time.Duration(best) * time.Millisecond
	return s
}

// RenderSummary prints totals and the saved progress.
func RenderSummary(w io.Writer, report Report) error {
	if _, err := fmt.Fprintf(w, "Coins: %d\n", report.Progress.Coins); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed levels: %d\n", len(report.Progress.CompletedLevelIDs)); err != nil {
		return err
	}
	if len(report.Results) == 0 {
		_, err := fmt.Fprintln(w, "No level results found.")
		return err
	}
	s := Summarize(report.Results)
	lines := []string{
		fmt.Sprintf("Levels played: %d (%d distinct)", s.Levels, s.Distinct),
		fmt.Sprintf("Coins earned: %d", s.CoinsEarned),
		fmt.Sprintf("Extra words: %d", s.ExtraWords),
		fmt.Sprintf("Hints used: %d", s.HintsUsed),
		fmt.Sprintf("Avg time: %s", formatDuration(s.AvgDuration)),
		fmt.Sprintf("Best time: %s", formatDuration(s.BestDuration)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResults prints one row per level result.
func RenderResults(w io.Writer, results []model.LevelResult) error {
	if len(results) == 0 {
		return nil
	}
	headers := []string{"Date", "Level", "Words", "Extras", "Hints", "Coins", "Time"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.LevelID),
			strconv.Itoa(r.SolvedWords),
			strconv.Itoa(r.ExtraWords),
			strconv.Itoa(r.HintsUsed),
			strconv.Itoa(r.CoinsEarned),
			formatDuration(time.Duration(r.DurationMs) * time.Millisecond),
		})
	}
	return RenderTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true})
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	sec := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, sec)
}
