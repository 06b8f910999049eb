// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creatorlimen/wordnaija/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for player progress and level results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			coins INTEGER NOT NULL,
			sound_enabled INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS completed_levels (
			level_id INTEGER PRIMARY KEY,
			completed_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			coins_earned INTEGER NOT NULL,
			solved_words INTEGER NOT NULL,
			extra_words INTEGER NOT NULL,
			hints_used INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_level_results_ended_at ON level_results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_level_results_level_id ON level_results(level_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadProgress returns the saved snapshot, or def when nothing is saved yet.
func (s *Store) LoadProgress(ctx context.Context, def model.Progress) (model.Progress, error) {
	var p model.Progress
	var sound int
	err := s.db.QueryRowContext(ctx, `SELECT coins, sound_enabled FROM progress WHERE id = 1`).Scan(&p.Coins, &sound)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return model.Progress{}, err
	}
	p.SoundEnabled = sound != 0

	rows, err := s.db.QueryContext(ctx, `SELECT level_id FROM completed_levels ORDER BY level_id ASC`)
	if err != nil {
		return model.Progress{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return model.Progress{}, err
		}
		p.CompletedLevelIDs = append(p.CompletedLevelIDs, id)
	}
	if err := rows.Err(); err != nil {
		return model.Progress{}, err
	}
	return p, nil
}

// SaveProgress replaces the saved snapshot. Completed levels are only ever added.
func (s *Store) SaveProgress(ctx context.Context, p model.Progress) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	sound := 0
	if p.SoundEnabled {
		sound = 1
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO progress (id, coins, sound_enabled) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET coins = excluded.coins, sound_enabled = excluded.sound_enabled`,
		p.Coins, sound,
	); err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339Nano)
	for _, id := range p.CompletedLevelIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO completed_levels (level_id, completed_at) VALUES (?, ?)`, id, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertLevelResult stores a completed level.
func (s *Store) InsertLevelResult(ctx context.Context, r model.LevelResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO level_results (run_id, level_id, started_at, ended_at, coins_earned, solved_words, extra_words, hints_used, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.LevelID,
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		r.CoinsEarned,
		r.SolvedWords,
		r.ExtraWords,
		r.HintsUsed,
		r.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListLevelResults returns results filtered by stats config, oldest first.
func (s *Store) ListLevelResults(ctx context.Context, cfg model.StatsConfig) ([]model.LevelResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.LevelID > 0 {
		clauses = append(clauses, "level_id = ?")
		args = append(args, cfg.LevelID)
	}
	query := fmt.Sprintf(`SELECT run_id, level_id, started_at, ended_at, coins_earned, solved_words, extra_words, hints_used, duration_ms
		FROM level_results
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.LevelResult
	for rows.Next() {
		var r model.LevelResult
		var startedAt, endedAt string
		if err := rows.Scan(&r.RunID, &r.LevelID, &startedAt, &endedAt, &r.CoinsEarned, &r.SolvedWords, &r.ExtraWords, &r.HintsUsed, &r.DurationMs); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return results, nil
}
