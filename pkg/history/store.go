// Package history records finished sweeps in a SQLite file so runs with
// different seeds or scalings can be compared later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	started_at    INTEGER NOT NULL,
	dataset       TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	test_fraction REAL NOT NULL,
	scaling       TEXT NOT NULL,
	best_k        INTEGER NOT NULL,
	best_accuracy REAL NOT NULL,
	elapsed_ns    INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS scores (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	k        INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	PRIMARY KEY (run_id, position)
)`}

// Run is one recorded sweep.
type Run struct {
	ID           string
	StartedAt    time.Time
	Dataset      string
	Seed         int64
	TestFraction float64
	Scaling      string
	Result       sweep.Result
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dsn. Use ":memory:"
// for a throwaway store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save stores run and returns its id. An empty run.ID is replaced by a new UUID.
func (s *Store) Save(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	res := run.Result
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, dataset, seed, test_fraction, scaling, best_k, best_accuracy, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), run.Dataset, run.Seed, run.TestFraction, run.Scaling,
		res.Best.K, res.Best.Accuracy, int64(res.Elapsed))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for i, sc := range res.Scores {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scores (run_id, position, k, accuracy) VALUES (?, ?, ?, ?)`,
			run.ID, i, sc.K, sc.Accuracy)
		if err != nil {
			return "", fmt.Errorf("insert score k=%d: %w", sc.K, err)
		}
	}
	return run.ID, tx.Commit()
}

// Recent returns up to limit runs, newest first, with their scores in sweep order.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, dataset, seed, test_fraction, scaling, best_k, best_accuracy, elapsed_ns
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt int64
			elapsed   int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &r.Dataset, &r.Seed, &r.TestFraction, &r.Scaling,
			&r.Result.Best.K, &r.Result.Best.Accuracy, &elapsed); err != nil {
			rows.Close()
			return nil, err
		}
		r.StartedAt = time.Unix(0, startedAt)
		r.Result.Elapsed = time.Duration(elapsed)
		runs = append(runs, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		scores, err := s.scores(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Result.Scores = scores
	}
	return runs, nil
}

func (s *Store) scores(ctx context.Context, runID string) ([]sweep.Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT k, accuracy FROM scores WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []sweep.Score
	for rows.Next() {
		var sc sweep.Score
		if err := rows.Scan(&sc.K, &sc.Accuracy); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
