// Package validator checks that every configured level generates cleanly.
package validator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/creatorlimen/wordnaija/internal/level"
)

// Result is the outcome for one level.
type Result struct {
	LevelID int
	Title   string
	Words   int
	Placed  int
	Missing []string
	Rows    int
	Cols    int
	Err     error
}

// OK reports whether the level generated with every word placed.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Missing) == 0
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// Run builds every definition, at most workers at a time, and returns the
// results ordered by level ID.
func Run(ctx context.Context, defs []level.Definition, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, def := range defs {
		i, def := i, def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(def)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].LevelID < results[j].LevelID })
	return results, nil
}

func check(def level.Definition) Result {
	res := Result{LevelID: def.ID, Title: def.Title, Words: len(def.Words)}
	lvl, err := level.Build(def)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rows, res.Cols = lvl.Rows, lvl.Cols
	placed := make(map[string]struct{}, len(lvl.TargetWords))
	for _, tw := range lvl.TargetWords {
		placed[tw.Word] = struct{}{}
	}
	res.Placed = len(placed)
	for _, w := range def.Words {
		word := strings.ToUpper(strings.TrimSpace(w.Word))
		if _, ok := placed[word]; !ok {
			res.Missing = append(res.Missing, word)
		}
	}
	return res
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Render writes one PASS/FAIL line per level followed by a summary line.
func Render(w io.Writer, results []Result, useColor bool) error {
	pass, fail := "PASS", "FAIL"
	if useColor {
		pass, fail = passStyle.Render(pass), failStyle.Render(fail)
	}
	for _, r := range results {
		var line string
		switch {
		case r.Err != nil:
			line = fmt.Sprintf("%s level %d %q: %v", fail, r.LevelID, r.Title, r.Err)
		case len(r.Missing) > 0:
			line = fmt.Sprintf("%s level %d %q: dropped %s", fail, r.LevelID, r.Title, strings.Join(r.Missing, ", "))
		default:
			line = fmt.Sprintf("%s level %d %q: %d/%d words, %dx%d grid", pass, r.LevelID, r.Title, r.Placed, r.Words, r.Rows, r.Cols)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d levels, %d failed\n", len(results), Failed(results))
	return err
}

// ShouldUseColor reports whether w is a terminal.
func ShouldUseColor(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
