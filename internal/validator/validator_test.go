package validator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/creatorlimen/wordnaija/internal/generator"
	"github.com/creatorlimen/wordnaija/internal/level"
	"github.com/creatorlimen/wordnaija/internal/model"
)

func def(id int, title string, words ...string) level.Definition {
	specs := make([]model.WordSpec, len(words))
	for i, w := range words {
		specs[i] = model.WordSpec{Word: w}
	}
	return level.Definition{ID: id, Title: title, Words: specs}
}

func TestRunBundledCatalog(t *testing.T) {
	cat, err := level.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	results, err := Run(context.Background(), cat.Definitions(), 4)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != cat.TotalLevels() {
		t.Fatalf("expected %d results, got %d", cat.TotalLevels(), len(results))
	}
	for _, r := range results {
		if !r.OK() {
			t.Fatalf("level %d failed: err=%v missing=%v", r.LevelID, r.Err, r.Missing)
		}
		if r.Placed != r.Words {
			t.Fatalf("level %d placed %d of %d", r.LevelID, r.Placed, r.Words)
		}
	}
}

func TestRunReportsFailures(t *testing.T) {
	defs := []level.Definition{
		def(3, "broken", "CHOP", "XYZ"),
		def(1, "sun", "SHINE", "SHE", "HEN", "HIS"),
		def(2, "pool", "TOOT", "TOT"),
	}
	results, err := Run(context.Background(), defs, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].LevelID != 1 || results[1].LevelID != 2 || results[2].LevelID != 3 {
		t.Fatalf("results not ordered by id: %+v", results)
	}
	if !results[0].OK() {
		t.Fatalf("level 1 should pass: %v", results[0].Err)
	}
	var invalid *level.InvalidLevelError
	if !errors.As(results[1].Err, &invalid) {
		t.Fatalf("level 2: expected InvalidLevelError, got %v", results[1].Err)
	}
	var genErr *generator.GenerationError
	if !errors.As(results[2].Err, &genErr) || genErr.Word != "XYZ" {
		t.Fatalf("level 3: expected GenerationError for XYZ, got %v", results[2].Err)
	}
	if Failed(results) != 2 {
		t.Fatalf("expected 2 failures, got %d", Failed(results))
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, []level.Definition{def(1, "sun", "SHINE", "SHE")}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRender(t *testing.T) {
	results := []Result{
		{LevelID: 1, Title: "Sun", Words: 4, Placed: 4, Rows: 4, Cols: 5},
		{LevelID: 2, Title: "Kitchen", Words: 4, Placed: 3, Missing: []string{"TOP"}},
		{LevelID: 3, Title: "Broken", Words: 2, Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	if err := Render(&buf, results, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		`PASS level 1 "Sun": 4/4 words, 4x5 grid`,
		`FAIL level 2 "Kitchen": dropped TOP`,
		`FAIL level 3 "Broken": boom`,
		`3 levels, 2 failed`,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestShouldUseColorForBuffers(t *testing.T) {
	if ShouldUseColor(&bytes.Buffer{}) {
		t.Fatalf("buffers are never terminals")
	}
}
