// Package store archives benchmark run summaries in SQLite so past
// runs can be listed and compared.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"

	"haltbench/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRunNotFound is returned when a run id has no archived summary.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is the persisted view of one benchmark run.
type RunSummary struct {
	RunID         string    `json:"run_id"`
	Timestamp     time.Time `json:"timestamp"`
	Provider      string    `json:"provider"`
	Mode          string    `json:"mode"`
	FinalScore    float64   `json:"final_score"`
	Grade         string    `json:"grade"`
	MerkleRoot    string    `json:"merkle_root"`
	TotalItems    int       `json:"total_items"`
	BaselineScore *float64  `json:"baseline_score,omitempty"`
	Improvement   *float64  `json:"improvement,omitempty"`
}

// Comparison reports how one run fares against another.
type Comparison struct {
	A     RunSummary `json:"a"`
	B     RunSummary `json:"b"`
	Delta float64    `json:"delta"`
}

// Store is the run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates or opens the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		provider TEXT NOT NULL,
		mode TEXT NOT NULL,
		final_score REAL NOT NULL,
		grade TEXT NOT NULL,
		merkle_root TEXT NOT NULL,
		total_items INTEGER NOT NULL,
		baseline_score REAL,
		improvement REAL,
		results_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_provider ON runs(provider);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives a completed benchmark run.
func (s *Store) SaveRun(res *types.BenchmarkResults) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultsJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	totalItems := 0
	for _, cr := range res.Categories {
		totalItems += cr.TotalTests
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (run_id, timestamp, provider, mode, final_score, grade,
			merkle_root, total_items, baseline_score, improvement, results_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			timestamp = excluded.timestamp,
			final_score = excluded.final_score,
			grade = excluded.grade,
			merkle_root = excluded.merkle_root,
			total_items = excluded.total_items,
			baseline_score = excluded.baseline_score,
			improvement = excluded.improvement,
			results_json = excluded.results_json
	`, res.RunID, res.Timestamp.UTC(), res.Provider, res.Mode, res.FinalScore,
		res.Grade, res.MerkleRoot, totalItems, res.BaselineScore, res.Improvement,
		string(resultsJSON))

	if err != nil {
		return fmt.Errorf("save run %s: %w", res.RunID, err)
	}
	return nil
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, timestamp, provider, mode, final_score, grade,
			merkle_root, total_items, baseline_score, improvement
		FROM runs
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		summary, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

// GetRun retrieves one archived run summary by id.
func (s *Store) GetRun(runID string) (RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT run_id, timestamp, provider, mode, final_score, grade,
			merkle_root, total_items, baseline_score, improvement
		FROM runs WHERE run_id = ?
	`, runID)

	summary, err := scanSummary(row.Scan)
	if err == sql.ErrNoRows {
		return RunSummary{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

// GetResults retrieves the full archived results for a run.
func (s *Store) GetResults(runID string) (*types.BenchmarkResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resultsJSON string
	err := s.db.QueryRow(`SELECT results_json FROM runs WHERE run_id = ?`, runID).
		Scan(&resultsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	var res types.BenchmarkResults
	if err := json.UnmarshalFromString(resultsJSON, &res); err != nil {
		return nil, fmt.Errorf("decode archived results: %w", err)
	}
	return &res, nil
}

// Compare returns the score delta between two archived runs, B minus A.
func (s *Store) Compare(runA, runB string) (*Comparison, error) {
	a, err := s.GetRun(runA)
	if err != nil {
		return nil, err
	}
	b, err := s.GetRun(runB)
	if err != nil {
		return nil, err
	}
	return &Comparison{A: a, B: b, Delta: b.FinalScore - a.FinalScore}, nil
}

func scanSummary(scan func(...any) error) (RunSummary, error) {
	var summary RunSummary
	var baseline, improvement sql.NullFloat64

	err := scan(&summary.RunID, &summary.Timestamp, &summary.Provider,
		&summary.Mode, &summary.FinalScore, &summary.Grade,
		&summary.MerkleRoot, &summary.TotalItems, &baseline, &improvement)
	if err != nil {
		return RunSummary{}, err
	}

	if baseline.Valid {
		summary.BaselineScore = &baseline.Float64
	}
	if improvement.Valid {
		summary.Improvement = &improvement.Float64
	}
	return summary, nil
}
